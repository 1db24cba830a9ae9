package games_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/games"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

func TestShuffleKeepsEveryCard(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		cards := games.NewDeck()
		games.Shuffle(games.NewSource(seed), cards)

		if len(cards) != 52 {
			t.Fatalf("seed %d: %d cards", seed, len(cards))
		}
		seen := make(map[games.Card]bool, 52)
		for _, c := range cards {
			if seen[c] {
				t.Fatalf("seed %d: duplicate %s", seed, c)
			}
			seen[c] = true
		}
	}
}

func TestDeckDealsUntilEmpty(t *testing.T) {
	d := games.NewShuffledDeck(games.NewSource(7))
	for i := 0; i < 52; i++ {
		if _, err := d.Deal(); err != nil {
			t.Fatalf("deal %d: %v", i, err)
		}
	}
	if _, err := d.Deal(); !errors.Is(err, games.ErrDeckEmpty) {
		t.Errorf("expected ErrDeckEmpty, got %v", err)
	}
}

func TestDeckDealsFromTheFront(t *testing.T) {
	// Draws of 1 make every shuffle swap a no-op, leaving suit-major order.
	d := games.NewShuffledDeck(games.NewSequence(1))
	want := games.NewDeck()
	for i, w := range want[:5] {
		got, err := d.Deal()
		if err != nil {
			t.Fatalf("deal %d: %v", i, err)
		}
		if got != w {
			t.Errorf("deal %d: got %s, want %s", i, got, w)
		}
	}
	if d.Len() != 47 {
		t.Errorf("expected 47 cards left, got %d", d.Len())
	}
}

func card(r games.Rank, s games.Suit) games.Card {
	return games.Card{Rank: r, Suit: s}
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards []games.Card
		want  int
	}{
		{"blackjack", []games.Card{card(games.Ace, games.Spades), card(games.King, games.Hearts)}, 21},
		{"two aces", []games.Card{card(games.Ace, games.Spades), card(games.Ace, games.Hearts)}, 12},
		{"soft to hard", []games.Card{card(games.Ace, games.Spades), card(games.Ace, games.Hearts), card(games.Nine, games.Clubs)}, 21},
		{"bust", []games.Card{card(games.King, games.Spades), card(games.Queen, games.Hearts), card(games.Five, games.Clubs)}, 25},
		{"ace drops", []games.Card{card(games.Ace, games.Spades), card(games.Seven, games.Hearts), card(games.Nine, games.Clubs)}, 17},
	}
	for _, tt := range tests {
		if got := games.HandValue(tt.cards); got != tt.want {
			t.Errorf("%s: HandValue = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestEvaluateHand(t *testing.T) {
	s, h, d, c := games.Spades, games.Hearts, games.Diamonds, games.Clubs
	tests := []struct {
		name  string
		cards []games.Card
		want  games.HandRank
	}{
		{"royal", []games.Card{card(games.Ten, s), card(games.Jack, s), card(games.Queen, s), card(games.King, s), card(games.Ace, s)}, games.RoyalFlush},
		{"straight flush", []games.Card{card(games.Five, h), card(games.Six, h), card(games.Seven, h), card(games.Eight, h), card(games.Nine, h)}, games.StraightFlush},
		{"wheel straight flush", []games.Card{card(games.Ace, d), card(games.Two, d), card(games.Three, d), card(games.Four, d), card(games.Five, d)}, games.StraightFlush},
		{"quads", []games.Card{card(games.Nine, s), card(games.Nine, h), card(games.Nine, d), card(games.Nine, c), card(games.Two, s)}, games.FourOfAKind},
		{"full house", []games.Card{card(games.Three, s), card(games.Three, h), card(games.Three, d), card(games.King, c), card(games.King, s)}, games.FullHouse},
		{"flush", []games.Card{card(games.Two, c), card(games.Five, c), card(games.Nine, c), card(games.Jack, c), card(games.King, c)}, games.Flush},
		{"wheel straight", []games.Card{card(games.Ace, s), card(games.Two, h), card(games.Three, d), card(games.Four, c), card(games.Five, s)}, games.Straight},
		{"trips", []games.Card{card(games.Seven, s), card(games.Seven, h), card(games.Seven, d), card(games.Two, c), card(games.King, s)}, games.ThreeOfAKind},
		{"two pair", []games.Card{card(games.Seven, s), card(games.Seven, h), card(games.Two, d), card(games.Two, c), card(games.King, s)}, games.TwoPair},
		{"jacks", []games.Card{card(games.Jack, s), card(games.Jack, h), card(games.Two, d), card(games.Five, c), card(games.Nine, s)}, games.JacksOrBetter},
		{"low pair", []games.Card{card(games.Ten, s), card(games.Ten, h), card(games.Two, d), card(games.Five, c), card(games.Nine, s)}, games.NoWin},
		{"nothing", []games.Card{card(games.Two, s), card(games.Four, h), card(games.Six, d), card(games.Eight, c), card(games.King, s)}, games.NoWin},
	}
	for _, tt := range tests {
		if got := games.EvaluateHand(tt.cards); got != tt.want {
			t.Errorf("%s: EvaluateHand = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestBlackjackStandSettlesConsistently(t *testing.T) {
	two := decimal.NewFromInt(2)
	for seed := int64(0); seed < 50; seed++ {
		b := games.NewBlackjack(games.NewSource(seed), two)
		if err := b.Apply(models.Action{Kind: models.ActionStand}); err != nil {
			t.Fatalf("seed %d: stand: %v", seed, err)
		}
		if !b.Finished() {
			t.Fatalf("seed %d: round should be finished after stand", seed)
		}

		view := b.View().(games.BlackjackView)
		if view.DealerValue < 17 {
			t.Errorf("seed %d: dealer stopped at %d", seed, view.DealerValue)
		}

		out := b.Outcome(10)
		p, d := view.PlayerValue, view.DealerValue
		switch {
		case d > 21 || p > d:
			if out.Result != models.ResultWin || out.Payout != 20 {
				t.Errorf("seed %d: %d vs %d should win 20, got %+v", seed, p, d, out)
			}
		case p == d:
			if out.Result != models.ResultPush || out.Payout != 10 {
				t.Errorf("seed %d: %d vs %d should push, got %+v", seed, p, d, out)
			}
		default:
			if out.Result != models.ResultLoss {
				t.Errorf("seed %d: %d vs %d should lose, got %+v", seed, p, d, out)
			}
		}

		if err := b.Apply(models.Action{Kind: models.ActionHit}); !errors.Is(err, games.ErrSessionOver) {
			t.Errorf("seed %d: expected ErrSessionOver, got %v", seed, err)
		}
	}
}

func TestBlackjackHitUntilBust(t *testing.T) {
	var b *games.Blackjack
	for seed := int64(0); b == nil || b.Finished(); seed++ {
		b = games.NewBlackjack(games.NewSource(seed), decimal.NewFromInt(2))
	}
	for !b.Finished() {
		if err := b.Apply(models.Action{Kind: models.ActionHit}); err != nil {
			t.Fatalf("hit: %v", err)
		}
	}
	view := b.View().(games.BlackjackView)
	if view.PlayerValue <= 21 {
		t.Errorf("hitting should only end on a bust, got %d", view.PlayerValue)
	}
	if b.Outcome(10).Result != models.ResultLoss {
		t.Error("a bust must lose")
	}
}

func TestVideoPokerDrawKeepsHeldCards(t *testing.T) {
	table := map[games.HandRank]decimal.Decimal{games.JacksOrBetter: decimal.NewFromInt(1)}
	v := games.NewVideoPoker(games.NewSource(11), table)
	before := v.View().(games.VideoPokerView).Hand

	if err := v.Apply(models.Action{Kind: models.ActionDraw, Held: []int{0, 2}}); err != nil {
		t.Fatalf("draw: %v", err)
	}
	after := v.View().(games.VideoPokerView).Hand
	if after[0] != before[0] || after[2] != before[2] {
		t.Errorf("held cards changed: %v -> %v", before, after)
	}

	seen := map[games.Card]bool{}
	for _, c := range append(before, after...) {
		seen[c] = true
	}
	if len(seen) != 8 {
		t.Errorf("replacement cards must come from the remaining deck, got %d distinct", len(seen))
	}

	if err := v.Apply(models.Action{Kind: models.ActionDraw}); !errors.Is(err, games.ErrSessionOver) {
		t.Errorf("second draw should fail, got %v", err)
	}
}

func TestVideoPokerRejectsBadHold(t *testing.T) {
	v := games.NewVideoPoker(games.NewSource(1), nil)
	if err := v.Apply(models.Action{Kind: models.ActionDraw, Held: []int{5}}); !errors.Is(err, games.ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection, got %v", err)
	}
}
