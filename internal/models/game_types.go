package models

// Selection carries the player's choice for a single-shot round. Which
// fields matter depends on the game.
type Selection struct {
	Pick    string `json:"pick,omitempty"`
	Numbers []int  `json:"numbers,omitempty"`
	Number  int    `json:"number,omitempty"`
	Tier    string `json:"tier,omitempty"`
	Cells   []int  `json:"cells,omitempty"`
}

type PlayRequest struct {
	GameType  GameType  `json:"game_type" binding:"required"`
	Stake     int64     `json:"stake"`
	Selection Selection `json:"selection"`
}

type SessionRequest struct {
	GameType GameType `json:"game_type" binding:"required"`
	Stake    int64    `json:"stake"`
	Level    string   `json:"level,omitempty"`
}

type ActionKind string

const (
	ActionHit     ActionKind = "hit"
	ActionStand   ActionKind = "stand"
	ActionDraw    ActionKind = "draw"
	ActionReveal  ActionKind = "reveal"
	ActionGuess   ActionKind = "guess"
	ActionCashout ActionKind = "cashout"
)

type Action struct {
	Kind   ActionKind `json:"kind" binding:"required"`
	Cell   int        `json:"cell"`
	Held   []int      `json:"held,omitempty"`
	Higher bool       `json:"higher"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
}

type GrantRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}
