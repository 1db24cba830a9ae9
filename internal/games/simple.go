package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

type Chance struct {
	Probability float64         `json:"probability"`
	Multiplier  decimal.Decimal `json:"multiplier"`
}

// ChanceGame wins when a single draw falls under the picked option's
// probability.
type ChanceGame struct {
	Options map[string]Chance
}

type ChanceDetail struct {
	Pick        string  `json:"pick"`
	Probability float64 `json:"probability"`
	Draw        float64 `json:"draw"`
}

func (g *ChanceGame) Play(src Source, stake int64, sel models.Selection) (models.Outcome, error) {
	c, ok := g.Options[sel.Pick]
	if !ok {
		return models.Outcome{}, fmt.Errorf("%w: unknown option %q", ErrInvalidSelection, sel.Pick)
	}
	u := clampUnit(src.Float64())
	detail := ChanceDetail{Pick: sel.Pick, Probability: c.Probability, Draw: u}
	if u >= c.Probability {
		return Loss(detail), nil
	}
	return Win(stake, c.Multiplier, detail), nil
}

// ProximityGame draws a target in [Min,Max] and wins when the guess lands
// within Tolerance of it.
type ProximityGame struct {
	Min        int
	Max        int
	Tolerance  int
	Multiplier decimal.Decimal
}

type ProximityDetail struct {
	Guess  int `json:"guess"`
	Target int `json:"target"`
}

func (g *ProximityGame) Play(src Source, stake int64, sel models.Selection) (models.Outcome, error) {
	if sel.Number < g.Min || sel.Number > g.Max {
		return models.Outcome{}, fmt.Errorf("%w: guess must be in %d..%d", ErrInvalidSelection, g.Min, g.Max)
	}
	target := IntRange(src, g.Min, g.Max)
	detail := ProximityDetail{Guess: sel.Number, Target: target}
	diff := sel.Number - target
	if diff < 0 {
		diff = -diff
	}
	if diff > g.Tolerance {
		return Loss(detail), nil
	}
	return Win(stake, g.Multiplier, detail), nil
}

var rpsBeats = map[string]string{
	"rock":     "scissors",
	"paper":    "rock",
	"scissors": "paper",
}

var rpsMoves = []string{"rock", "paper", "scissors"}

// RockPaperScissors returns the stake on a tie.
type RockPaperScissors struct {
	Multiplier decimal.Decimal
}

type RPSDetail struct {
	Player   string `json:"player"`
	Computer string `json:"computer"`
}

func (g *RockPaperScissors) Play(src Source, stake int64, sel models.Selection) (models.Outcome, error) {
	if _, ok := rpsBeats[sel.Pick]; !ok {
		return models.Outcome{}, fmt.Errorf("%w: unknown move %q", ErrInvalidSelection, sel.Pick)
	}
	computer := rpsMoves[Intn(src, len(rpsMoves))]
	detail := RPSDetail{Player: sel.Pick, Computer: computer}
	switch {
	case computer == sel.Pick:
		return Push(stake, detail), nil
	case rpsBeats[sel.Pick] == computer:
		return Win(stake, g.Multiplier, detail), nil
	}
	return Loss(detail), nil
}
