package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

type Option struct {
	Label      string          `json:"label"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// ChoiceGame draws one of its options uniformly and pays the picked
// option's multiplier when the draw matches the pick.
type ChoiceGame struct {
	Options []Option
	// AutoPick replaces the player's pick for games with nothing to choose.
	AutoPick string
}

type ChoiceDetail struct {
	Pick  string `json:"pick"`
	Drawn string `json:"drawn"`
}

func (g *ChoiceGame) Play(src Source, stake int64, sel models.Selection) (models.Outcome, error) {
	pick := sel.Pick
	if g.AutoPick != "" {
		pick = g.AutoPick
	}

	picked := -1
	for i, o := range g.Options {
		if o.Label == pick {
			picked = i
			break
		}
	}
	if picked < 0 {
		return models.Outcome{}, fmt.Errorf("%w: unknown option %q", ErrInvalidSelection, pick)
	}

	drawn := Intn(src, len(g.Options))
	detail := ChoiceDetail{Pick: pick, Drawn: g.Options[drawn].Label}
	if drawn != picked {
		return Loss(detail), nil
	}
	return Win(stake, g.Options[picked].Multiplier, detail), nil
}
