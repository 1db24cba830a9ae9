package models

import "time"

type GameType string

const (
	GameTypeCoinToss        GameType = "coin_toss"
	GameTypeColorMatch      GameType = "color_match"
	GameTypeDoubleOrNothing GameType = "double_or_nothing"
	GameTypeRoulette        GameType = "roulette"
	GameTypeHorseRacing     GameType = "horse_racing"
	GameTypeWheelOfFortune  GameType = "wheel_of_fortune"
	GameTypeSimpleWheel     GameType = "simple_wheel"
	GameTypeColorWheel      GameType = "color_wheel"
	GameTypeTreasureChest   GameType = "treasure_chest"
	GameTypeBingo           GameType = "bingo"
	GameTypeLuckyNumbers    GameType = "lucky_numbers"
	GameTypeSlotMachine     GameType = "slot_machine"
	GameTypeDiamondMine     GameType = "diamond_mine"
	GameTypeCardFlip        GameType = "card_flip"
	GameTypeLuckyDice       GameType = "lucky_dice"
	GameTypePiratePlunder   GameType = "pirate_plunder"
	GameTypeNumberGuess     GameType = "number_guess"
	GameTypeRockPaper       GameType = "rock_paper_scissors"
	GameTypeScratchCard     GameType = "scratch_card"
	GameTypeMatchThree      GameType = "match_three"

	// played through sessions
	GameTypeBlackjack    GameType = "blackjack"
	GameTypeVideoPoker   GameType = "video_poker"
	GameTypeMinesweeper  GameType = "minesweeper"
	GameTypeMines        GameType = "mines"
	GameTypeTreasureHunt GameType = "treasure_hunt"
	GameTypeCrystalMaze  GameType = "crystal_maze"
	GameTypeHighLow      GameType = "high_low"
	GameTypeHigherLower  GameType = "higher_lower"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionForfeited SessionStatus = "forfeited"
)

// GameSession is the caller-facing view of a multi-step round.
type GameSession struct {
	ID        string        `json:"id"`
	AccountID string        `json:"accountId"`
	GameType  GameType      `json:"gameType"`
	Stake     int64         `json:"stake"`
	Status    SessionStatus `json:"status"`
	State     any           `json:"state"`
	Round     *BetRound     `json:"round,omitempty"`
	StartedAt time.Time     `json:"startedAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
