package services

import "errors"

var (
	ErrInvalidUsername   = errors.New("username is required")
	ErrAccountNotFound   = errors.New("account not found")
	ErrNoCurrentAccount  = errors.New("no current account")
	ErrInvalidStake      = errors.New("stake must be a positive amount")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidGameType   = errors.New("invalid game type")
	ErrRoundInProgress   = errors.New("a round of this game is already in progress")
	ErrRoundSettled      = errors.New("round already settled")
	ErrResolveFailed     = errors.New("outcome could not be resolved")
	ErrSessionNotFound   = errors.New("game session not found")
	ErrForbidden         = errors.New("not allowed for this account")
)
