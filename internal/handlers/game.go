package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/services"
)

type GameHandler struct {
	gameEngine *services.GameEngine
}

func NewGameHandler(gameEngine *services.GameEngine) *GameHandler {
	return &GameHandler{gameEngine: gameEngine}
}

func (h *GameHandler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": h.gameEngine.Catalogue().Games()})
}

// Play resolves a single-shot round in one request.
func (h *GameHandler) Play(c *gin.Context) {
	accountID := c.GetString("account_id")

	var req models.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	round, err := h.gameEngine.Play(c.Request.Context(), accountID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"round":   round,
		"display": gin.H{
			"stake":   models.FormatCurrency(round.Stake),
			"net":     models.FormatCurrency(round.Net),
			"balance": models.FormatCurrency(round.Balance),
		},
	})
}

func (h *GameHandler) StartSession(c *gin.Context) {
	accountID := c.GetString("account_id")

	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.gameEngine.StartSession(c.Request.Context(), accountID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    session,
	})
}

func (h *GameHandler) Act(c *gin.Context) {
	accountID := c.GetString("account_id")

	var action models.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.gameEngine.Act(c.Request.Context(), accountID, c.Param("id"), action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    session,
	})
}

func (h *GameHandler) GetActiveGames(c *gin.Context) {
	accountID := c.GetString("account_id")

	c.JSON(http.StatusOK, gin.H{
		"games": h.gameEngine.GetAccountActiveGames(accountID),
	})
}
