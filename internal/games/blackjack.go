package games

import (
	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

const dealerStandsOn = 17

// HandValue scores a blackjack hand: face cards count 10, aces count 11
// and drop to 1 while the hand would bust.
func HandValue(cards []Card) int {
	total, aces := 0, 0
	for _, c := range cards {
		switch {
		case c.Rank == Ace:
			total += 11
			aces++
		case c.Rank >= Ten:
			total += 10
		default:
			total += int(c.Rank)
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

type Blackjack struct {
	deck       *Deck
	multiplier decimal.Decimal
	player     []Card
	dealer     []Card
	done       bool
	result     models.Result
}

type BlackjackView struct {
	Player      []Card        `json:"player"`
	Dealer      []Card        `json:"dealer"`
	PlayerValue int           `json:"playerValue"`
	DealerValue int           `json:"dealerValue"`
	Done        bool          `json:"done"`
	Result      models.Result `json:"result,omitempty"`
}

// NewBlackjack deals two cards to the player and one to the dealer.
func NewBlackjack(src Source, multiplier decimal.Decimal) *Blackjack {
	b := &Blackjack{deck: NewShuffledDeck(src), multiplier: multiplier}
	b.player = append(b.player, b.draw(), b.draw())
	b.dealer = append(b.dealer, b.draw())
	return b
}

func (b *Blackjack) draw() Card {
	c, err := b.deck.Deal()
	if err != nil {
		// a single hand never exhausts a full deck
		panic(err)
	}
	return c
}

func (b *Blackjack) Apply(a models.Action) error {
	if b.done {
		return ErrSessionOver
	}
	switch a.Kind {
	case models.ActionHit:
		b.player = append(b.player, b.draw())
		if HandValue(b.player) > 21 {
			b.finish(models.ResultLoss)
		}
	case models.ActionStand:
		b.stand()
	default:
		return unsupported(a.Kind)
	}
	return nil
}

func (b *Blackjack) stand() {
	for HandValue(b.dealer) < dealerStandsOn {
		b.dealer = append(b.dealer, b.draw())
	}
	p, d := HandValue(b.player), HandValue(b.dealer)
	switch {
	case d > 21 || p > d:
		b.finish(models.ResultWin)
	case p == d:
		b.finish(models.ResultPush)
	default:
		b.finish(models.ResultLoss)
	}
}

func (b *Blackjack) finish(r models.Result) {
	b.done = true
	b.result = r
}

func (b *Blackjack) Finished() bool {
	return b.done
}

func (b *Blackjack) Forfeit() {
	if !b.done {
		b.stand()
	}
}

func (b *Blackjack) Outcome(stake int64) models.Outcome {
	view := b.View()
	switch b.result {
	case models.ResultWin:
		return Win(stake, b.multiplier, view)
	case models.ResultPush:
		return Push(stake, view)
	}
	return Loss(view)
}

func (b *Blackjack) View() any {
	return BlackjackView{
		Player:      append([]Card(nil), b.player...),
		Dealer:      append([]Card(nil), b.dealer...),
		PlayerValue: HandValue(b.player),
		DealerValue: HandValue(b.dealer),
		Done:        b.done,
		Result:      b.result,
	}
}
