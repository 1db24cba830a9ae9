package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

type ReelSymbol struct {
	Name       string          `json:"name"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// ReelGame spins Reels independent uniform reels over the same symbols.
// All reels matching pays that symbol's multiplier. AllDistinct pays when
// no two reels match; Straight pays when the symbol indexes form a run.
type ReelGame struct {
	Symbols     []ReelSymbol
	Reels       int
	AllDistinct decimal.Decimal
	Straight    decimal.Decimal
}

type ReelDetail struct {
	Symbols []string `json:"symbols"`
	Pattern string   `json:"pattern"`
}

func (g *ReelGame) Validate() error {
	if len(g.Symbols) == 0 || g.Reels <= 0 {
		return fmt.Errorf("%w: reels need symbols", ErrInvalidTable)
	}
	return nil
}

func (g *ReelGame) Spin(src Source) []int {
	stops := make([]int, g.Reels)
	for i := range stops {
		stops[i] = Intn(src, len(g.Symbols))
	}
	return stops
}

func (g *ReelGame) Evaluate(stake int64, stops []int) models.Outcome {
	detail := ReelDetail{Symbols: make([]string, len(stops)), Pattern: "none"}
	seen := make(map[int]bool, len(stops))
	lo, hi := len(g.Symbols), -1
	for i, s := range stops {
		detail.Symbols[i] = g.Symbols[s].Name
		seen[s] = true
		lo = min(lo, s)
		hi = max(hi, s)
	}

	switch {
	case len(seen) == 1:
		detail.Pattern = "all_same"
		return Win(stake, g.Symbols[stops[0]].Multiplier, detail)
	case len(seen) == len(stops) && hi-lo == len(stops)-1 && g.Straight.IsPositive():
		detail.Pattern = "straight"
		return Win(stake, g.Straight, detail)
	case len(seen) == len(stops) && g.AllDistinct.IsPositive():
		detail.Pattern = "all_distinct"
		return Win(stake, g.AllDistinct, detail)
	}
	return Loss(detail)
}

func (g *ReelGame) Play(src Source, stake int64, _ models.Selection) (models.Outcome, error) {
	return g.Evaluate(stake, g.Spin(src)), nil
}
