package games_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/games"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

func bingo() *games.MatchDraw {
	return &games.MatchDraw{
		Universe: 75,
		Picks:    5,
		Draws:    5,
		Unique:   true,
		Schedule: map[int]decimal.Decimal{
			3: decimal.NewFromInt(2),
			4: decimal.NewFromInt(10),
			5: decimal.NewFromInt(100),
		},
	}
}

func TestBingoThreeMatches(t *testing.T) {
	out := bingo().Evaluate(10, []int{1, 2, 3, 4, 5}, []int{1, 2, 3, 40, 41})
	if !out.Won() || out.Payout != 20 {
		t.Errorf("expected 3-match payout of 20, got %+v", out)
	}
	detail := out.Detail.(games.MatchDetail)
	if detail.Matches != 3 {
		t.Errorf("expected 3 matches, got %d", detail.Matches)
	}
}

func TestBingoNoPrizeBelowThree(t *testing.T) {
	out := bingo().Evaluate(10, []int{1, 2, 3, 4, 5}, []int{1, 2, 30, 40, 41})
	if out.Won() {
		t.Errorf("2 matches should lose, got %+v", out)
	}
}

func TestMatchesCountsDistinctPicks(t *testing.T) {
	if got := games.Matches([]int{3, 5}, []int{3, 3, 3}); got != 1 {
		t.Errorf("Matches = %d, want 1", got)
	}
}

func TestUniqueDrawHasNoRepeats(t *testing.T) {
	m := bingo()
	for seed := int64(0); seed < 200; seed++ {
		drawn := m.Draw(games.NewSource(seed))
		seen := map[int]bool{}
		for _, d := range drawn {
			if d < 1 || d > 75 {
				t.Fatalf("seed %d drew %d outside 1..75", seed, d)
			}
			if seen[d] {
				t.Fatalf("seed %d drew %d twice: %v", seed, d, drawn)
			}
			seen[d] = true
		}
	}
}

func TestMatchRejectsBadPicks(t *testing.T) {
	tests := map[string][]int{
		"too few":   {1, 2, 3},
		"duplicate": {1, 1, 2, 3, 4},
		"range":     {0, 1, 2, 3, 4},
	}
	for name, picks := range tests {
		_, err := bingo().Play(games.NewSource(1), 10, models.Selection{Numbers: picks})
		if !errors.Is(err, games.ErrInvalidSelection) {
			t.Errorf("%s: expected ErrInvalidSelection, got %v", name, err)
		}
	}
}
