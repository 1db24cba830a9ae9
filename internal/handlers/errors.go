package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/games"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/logger"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/services"
)

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrInvalidUsername, http.StatusBadRequest, "invalid_username"},
	{services.ErrInvalidStake, http.StatusBadRequest, "invalid_stake"},
	{services.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{services.ErrInvalidGameType, http.StatusBadRequest, "invalid_game"},
	{games.ErrInvalidSelection, http.StatusBadRequest, "invalid_selection"},
	{games.ErrUnknownGame, http.StatusBadRequest, "invalid_game"},
	{games.ErrUnknownLevel, http.StatusBadRequest, "unknown_level"},
	{games.ErrUnsupportedAction, http.StatusBadRequest, "unsupported_action"},
	{games.ErrCellRevealed, http.StatusBadRequest, "cell_revealed"},
	{games.ErrSessionOver, http.StatusConflict, "session_over"},
	{services.ErrInsufficientFunds, http.StatusPaymentRequired, "insufficient_funds"},
	{services.ErrRoundInProgress, http.StatusConflict, "round_in_progress"},
	{services.ErrRoundSettled, http.StatusConflict, "round_settled"},
	{services.ErrNoCurrentAccount, http.StatusUnauthorized, "no_account"},
	{services.ErrForbidden, http.StatusForbidden, "forbidden"},
	{services.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
	{services.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
}

func respondError(c *gin.Context, err error) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": err.Error(), "code": e.code})
			return
		}
	}

	logger.Log.Errorw("request failed",
		"path", c.FullPath(),
		"account_id", c.GetString("account_id"),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": "internal"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request",
		"details": err.Error(),
	})
}
