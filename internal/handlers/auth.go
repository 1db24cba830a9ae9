package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/services"
)

type AuthHandler struct {
	store      *services.AccountStore
	jwtService *services.JWTService
}

func NewAuthHandler(store *services.AccountStore, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		store:      store,
		jwtService: jwtService,
	}
}

// Login signs in by username, creating the account on first use.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	account, err := h.store.CreateOrGetAccount(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.jwtService.GenerateToken(account.ID, account.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"account": accountResponse(account),
	})
}

func accountResponse(a models.Account) gin.H {
	return gin.H{
		"id":              a.ID,
		"username":        a.Username,
		"balance":         a.Balance,
		"balance_display": models.FormatCurrency(a.Balance),
		"created_at":      a.CreatedAt,
		"stats":           a.Stats,
		"inventory":       a.Inventory,
		"is_admin":        a.IsAdmin(),
	}
}
