package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/services"
)

const defaultLeaderboardLimit = 10

type UserHandler struct {
	store      *services.AccountStore
	gameEngine *services.GameEngine
}

func NewUserHandler(store *services.AccountStore, gameEngine *services.GameEngine) *UserHandler {
	return &UserHandler{
		store:      store,
		gameEngine: gameEngine,
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	accountID := c.GetString("account_id")

	account, ok := h.store.Account(accountID)
	if !ok {
		respondError(c, services.ErrAccountNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":      accountResponse(account),
		"active_games": h.gameEngine.GetAccountActiveGames(accountID),
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.store.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// DeclareBankruptcy resets the balance to the starting amount. Stats stay.
func (h *UserHandler) DeclareBankruptcy(c *gin.Context) {
	accountID := c.GetString("account_id")
	h.store.ResetToStartingBalance(c.Request.Context(), accountID)

	account, ok := h.store.Account(accountID)
	if !ok {
		respondError(c, services.ErrAccountNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Bankruptcy declared",
		"account": accountResponse(account),
	})
}

func (h *UserHandler) Leaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": h.store.Leaderboard(limit)})
}
