package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/services"
)

type AdminHandler struct {
	store *services.AccountStore
}

func NewAdminHandler(store *services.AccountStore) *AdminHandler {
	return &AdminHandler{store: store}
}

func (h *AdminHandler) ListAccounts(c *gin.Context) {
	accounts := h.store.ListAccounts()
	out := make([]gin.H, len(accounts))
	for i, a := range accounts {
		out[i] = accountResponse(a)
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

func (h *AdminHandler) GrantBalance(c *gin.Context) {
	var req models.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	accountID := c.Param("id")
	if err := h.store.GrantBalance(c.Request.Context(), accountID, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	account, _ := h.store.Account(accountID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"account": accountResponse(account),
	})
}
