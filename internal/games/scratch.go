package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

type ScratchTier struct {
	Price     int64
	Cells     int
	Scratches int
	Prizes    []decimal.Decimal
}

// ScratchGame sells cards at a fixed price per tier. Every cell hides a
// prize drawn uniformly from the tier's multipliers; the player scratches
// a fixed number of cells and wins their sum.
type ScratchGame struct {
	Tiers map[string]ScratchTier
}

type ScratchDetail struct {
	Tier      string  `json:"tier"`
	Prizes    []int64 `json:"prizes"`
	Scratched []int   `json:"scratched"`
	Total     int64   `json:"total"`
}

// StakeFor returns the card price for the selected tier.
func (g *ScratchGame) StakeFor(sel models.Selection) (int64, error) {
	tier, ok := g.Tiers[sel.Tier]
	if !ok {
		return 0, fmt.Errorf("%w: unknown card %q", ErrInvalidSelection, sel.Tier)
	}
	return tier.Price, nil
}

func (g *ScratchGame) Play(src Source, stake int64, sel models.Selection) (models.Outcome, error) {
	tier, ok := g.Tiers[sel.Tier]
	if !ok {
		return models.Outcome{}, fmt.Errorf("%w: unknown card %q", ErrInvalidSelection, sel.Tier)
	}
	if err := tier.checkCells(sel.Cells); err != nil {
		return models.Outcome{}, err
	}

	prizes := make([]int64, tier.Cells)
	for i := range prizes {
		prizes[i] = Payout(tier.Price, tier.Prizes[Intn(src, len(tier.Prizes))])
	}

	var total int64
	for _, c := range sel.Cells {
		total += prizes[c]
	}
	detail := ScratchDetail{Tier: sel.Tier, Prizes: prizes, Scratched: sel.Cells, Total: total}
	if total == 0 {
		return Loss(detail), nil
	}
	multiplier := decimal.Zero
	if stake > 0 {
		multiplier = decimal.NewFromInt(total).Div(decimal.NewFromInt(stake))
	}
	return models.Outcome{
		Result:     models.ResultWin,
		Payout:     total,
		Multiplier: multiplier,
		Detail:     detail,
	}, nil
}

func (t ScratchTier) checkCells(cells []int) error {
	if len(cells) != t.Scratches {
		return fmt.Errorf("%w: scratch exactly %d cells", ErrInvalidSelection, t.Scratches)
	}
	seen := make(map[int]bool, len(cells))
	for _, c := range cells {
		if c < 0 || c >= t.Cells || seen[c] {
			return fmt.Errorf("%w: bad cell %d", ErrInvalidSelection, c)
		}
		seen[c] = true
	}
	return nil
}
