package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/services"
)

// AuthMiddleware accepts a bearer token (or ?token= for websocket
// upgrades) whose account is the one currently logged in.
func AuthMiddleware(jwtService *services.JWTService, store *services.AccountStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Query("token")
			if tokenString == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
				c.Abort()
				return
			}
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		current, ok := store.CurrentAccount()
		if !ok || current.ID != claims.AccountID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session ended, please log in"})
			c.Abort()
			return
		}

		c.Set("account_id", current.ID)
		c.Set("username", current.Username)
		c.Set("is_admin", current.IsAdmin())

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": services.ErrForbidden.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}
