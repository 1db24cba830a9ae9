package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultPush Result = "push"
)

// Outcome is what a generator decides for one round. Payout is gross and
// includes the returned stake.
type Outcome struct {
	Result     Result          `json:"result"`
	Payout     int64           `json:"payout"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Detail     any             `json:"detail,omitempty"`
}

func (o Outcome) Won() bool {
	return o.Result == ResultWin
}

// BetRound is the settled record of a single wager. It is returned to the
// caller and never persisted.
type BetRound struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	GameType  GameType  `json:"gameType"`
	Stake     int64     `json:"stake"`
	Outcome   Outcome   `json:"outcome"`
	Recorded  Result    `json:"recorded"`
	Credited  int64     `json:"credited"`
	Net       int64     `json:"net"`
	Balance   int64     `json:"balance"`
	SettledAt time.Time `json:"settledAt"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	AccountID     string `json:"accountId"`
	Username      string `json:"username"`
	TotalWinnings int64  `json:"totalWinnings"`
	GamesPlayed   int64  `json:"gamesPlayed"`
	BiggestWin    int64  `json:"biggestWin"`
	Balance       int64  `json:"balance"`
}
