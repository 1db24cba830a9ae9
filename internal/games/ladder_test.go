package games_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/games"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

func higherLower(draws ...float64) (*games.LadderSession, error) {
	return games.NewLadderSession(games.NewSequence(draws...), games.LadderRules{
		Min: 1, Max: 100, Steps: []decimal.Decimal{decimal.NewFromInt(2)}, MaxGuesses: 1,
	})
}

func TestHigherLowerCorrectGuess(t *testing.T) {
	s, err := higherLower(0.5, 0.9)
	if err != nil {
		t.Fatalf("NewLadderSession: %v", err)
	}
	if err := s.Apply(models.Action{Kind: models.ActionGuess, Higher: true}); err != nil {
		t.Fatalf("guess: %v", err)
	}
	if !s.Finished() {
		t.Fatal("one guess should settle higher-lower")
	}
	if out := s.Outcome(10); out.Result != models.ResultWin || out.Payout != 20 {
		t.Errorf("expected 2x win, got %+v", out)
	}
}

func TestHigherLowerTieLoses(t *testing.T) {
	s, _ := higherLower(0.5, 0.5)
	_ = s.Apply(models.Action{Kind: models.ActionGuess, Higher: true})
	if out := s.Outcome(10); out.Result != models.ResultLoss {
		t.Errorf("a tie should lose, got %+v", out)
	}
	if err := s.Apply(models.Action{Kind: models.ActionGuess}); !errors.Is(err, games.ErrSessionOver) {
		t.Errorf("expected ErrSessionOver, got %v", err)
	}
}

func TestHighLowStreakMultiplier(t *testing.T) {
	rules := games.LadderRules{
		Min: 2, Max: 14,
		Base: decimal.NewFromInt(1), Increment: decimal.RequireFromString("0.5"),
	}
	// 2+floor(u*13): 0.5 -> 8, 0.9 -> 13, 0.1 -> 3
	s, err := games.NewLadderSession(games.NewSequence(0.5, 0.9, 0.1), rules)
	if err != nil {
		t.Fatalf("NewLadderSession: %v", err)
	}
	_ = s.Apply(models.Action{Kind: models.ActionGuess, Higher: true})
	_ = s.Apply(models.Action{Kind: models.ActionGuess, Higher: false})
	if s.Finished() {
		t.Fatal("unlimited ladder should keep going after correct guesses")
	}
	if !s.Multiplier().Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected 2x after two correct guesses, got %s", s.Multiplier())
	}
	if err := s.Apply(models.Action{Kind: models.ActionCashout}); err != nil {
		t.Fatalf("cashout: %v", err)
	}
	if out := s.Outcome(10); out.Payout != 20 {
		t.Errorf("expected payout 20, got %+v", out)
	}
}

func TestLadderRejectsEmptyRange(t *testing.T) {
	if _, err := games.NewLadderSession(games.NewSequence(0), games.LadderRules{Min: 5, Max: 5}); !errors.Is(err, games.ErrInvalidTable) {
		t.Errorf("expected ErrInvalidTable, got %v", err)
	}
}
