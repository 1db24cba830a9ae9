package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/config"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/games"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/handlers"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/logger"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/middleware"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	kv, err := services.NewKeyValueStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatalw("Failed to open account store", "driver", cfg.StoreDriver, "error", err)
	}
	defer kv.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewMetrics(registry)

	hub := handlers.NewWebSocketHub()

	store, err := services.NewAccountStore(ctx, kv,
		services.WithBroadcaster(hub),
		services.WithMetrics(metrics),
	)
	if err != nil {
		logger.Log.Fatalw("Failed to load accounts", "error", err)
	}

	catalogue, err := games.LoadCatalogue(cfg.PaytablePath, cfg.StrictPaytables())
	if err != nil {
		logger.Log.Fatalw("Failed to load paytable", "path", cfg.PaytablePath, "error", err)
	}

	seed := cfg.RNGSeed
	if seed == 0 {
		if seed, err = games.NewSeed(); err != nil {
			logger.Log.Fatalw("Failed to seed rng", "error", err)
		}
	}

	jwtService := services.NewJWTService(cfg)
	settler := services.NewSettler(store, metrics)
	gameEngine := services.NewGameEngine(settler, catalogue, games.NewSource(seed), metrics)

	go func() {
		ticker := time.NewTicker(cfg.SessionMaxAge / 2)
		defer ticker.Stop()

		for range ticker.C {
			gameEngine.CleanupStaleGames(ctx, cfg.SessionMaxAge)
		}
	}()

	authHandler := handlers.NewAuthHandler(store, jwtService)
	userHandler := handlers.NewUserHandler(store, gameEngine)
	gameHandler := handlers.NewGameHandler(gameEngine)
	adminHandler := handlers.NewAdminHandler(store)
	wsHandler := handlers.NewWebSocketHandler(store, hub)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/login", authHandler.Login)
	router.GET("/leaderboard", userHandler.Leaderboard)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService, store))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.POST("/logout", userHandler.Logout)
		protected.POST("/bankruptcy", userHandler.DeclareBankruptcy)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		gameRoutes := protected.Group("/games")
		{
			gameRoutes.GET("", gameHandler.ListGames)
			gameRoutes.POST("/play", gameHandler.Play)
			gameRoutes.GET("/active", gameHandler.GetActiveGames)

			sessions := gameRoutes.Group("/sessions")
			{
				sessions.POST("", gameHandler.StartSession)
				sessions.POST("/:id/actions", gameHandler.Act)
			}
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminOnly())
		{
			admin.GET("/accounts", adminHandler.ListAccounts)
			admin.POST("/accounts/:id/grant", adminHandler.GrantBalance)
		}
	}

	logger.Log.Infow("Server starting",
		"port", cfg.Port,
		"store", cfg.StoreDriver,
		"games", len(catalogue.Games()),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalw("Failed to start server", "error", err)
	}
}
