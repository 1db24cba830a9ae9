package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

// MatchDraw draws Draws values from 1..Universe and pays by how many of the
// player's picks appear among them.
type MatchDraw struct {
	Universe int
	Picks    int
	Draws    int
	// Unique draws without replacement.
	Unique   bool
	Schedule map[int]decimal.Decimal
}

type MatchDetail struct {
	Picks   []int `json:"picks"`
	Drawn   []int `json:"drawn"`
	Matches int   `json:"matches"`
}

func (m *MatchDraw) Validate() error {
	if m.Universe <= 0 || m.Picks <= 0 || m.Draws <= 0 {
		return fmt.Errorf("%w: match draw needs positive universe, picks and draws", ErrInvalidTable)
	}
	if m.Picks > m.Universe || (m.Unique && m.Draws > m.Universe) {
		return fmt.Errorf("%w: match draw larger than its universe", ErrInvalidTable)
	}
	return nil
}

func (m *MatchDraw) Draw(src Source) []int {
	if !m.Unique {
		drawn := make([]int, m.Draws)
		for i := range drawn {
			drawn[i] = IntRange(src, 1, m.Universe)
		}
		return drawn
	}

	pool := make([]int, m.Universe)
	for i := range pool {
		pool[i] = i + 1
	}
	for i := 0; i < m.Draws; i++ {
		j := i + Intn(src, m.Universe-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return append([]int(nil), pool[:m.Draws]...)
}

// Matches counts distinct picks that appear anywhere in drawn.
func Matches(picks, drawn []int) int {
	seen := make(map[int]bool, len(drawn))
	for _, d := range drawn {
		seen[d] = true
	}
	n := 0
	for _, p := range picks {
		if seen[p] {
			n++
			delete(seen, p)
		}
	}
	return n
}

func (m *MatchDraw) Evaluate(stake int64, picks, drawn []int) models.Outcome {
	n := Matches(picks, drawn)
	detail := MatchDetail{Picks: picks, Drawn: drawn, Matches: n}
	multiplier, ok := m.Schedule[n]
	if !ok {
		return Loss(detail)
	}
	return Win(stake, multiplier, detail)
}

func (m *MatchDraw) Play(src Source, stake int64, sel models.Selection) (models.Outcome, error) {
	if err := m.checkPicks(sel.Numbers); err != nil {
		return models.Outcome{}, err
	}
	return m.Evaluate(stake, sel.Numbers, m.Draw(src)), nil
}

func (m *MatchDraw) checkPicks(picks []int) error {
	if len(picks) != m.Picks {
		return fmt.Errorf("%w: need %d numbers, got %d", ErrInvalidSelection, m.Picks, len(picks))
	}
	seen := make(map[int]bool, len(picks))
	for _, p := range picks {
		if p < 1 || p > m.Universe {
			return fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidSelection, p, m.Universe)
		}
		if seen[p] {
			return fmt.Errorf("%w: %d picked twice", ErrInvalidSelection, p)
		}
		seen[p] = true
	}
	return nil
}
