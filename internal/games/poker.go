package games

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

type HandRank int

const (
	NoWin HandRank = iota
	JacksOrBetter
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var handNames = map[HandRank]string{
	NoWin:         "No Win",
	JacksOrBetter: "Jacks or Better",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (h HandRank) String() string {
	return handNames[h]
}

// ParseHandRank maps a display name back to its rank.
func ParseHandRank(name string) (HandRank, bool) {
	for rank, n := range handNames {
		if n == name {
			return rank, true
		}
	}
	return NoWin, false
}

// EvaluateHand ranks a five-card video poker hand. The ace plays low in
// A-2-3-4-5.
func EvaluateHand(cards []Card) HandRank {
	if len(cards) != 5 {
		return NoWin
	}

	counts := make(map[Rank]int, 5)
	ranks := make([]int, 0, 5)
	flush := true
	for i, c := range cards {
		counts[c.Rank]++
		ranks = append(ranks, int(c.Rank))
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Ints(ranks)

	straight := len(counts) == 5 && (ranks[4]-ranks[0] == 4 ||
		(ranks[4] == int(Ace) && ranks[3] == int(Five)))

	switch {
	case straight && flush && ranks[0] == int(Ten):
		return RoyalFlush
	case straight && flush:
		return StraightFlush
	}

	pairs, trips, quads := 0, 0, 0
	highPair := false
	for r, n := range counts {
		switch n {
		case 4:
			quads++
		case 3:
			trips++
		case 2:
			pairs++
			if r >= Jack {
				highPair = true
			}
		}
	}

	switch {
	case quads == 1:
		return FourOfAKind
	case trips == 1 && pairs == 1:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case trips == 1:
		return ThreeOfAKind
	case pairs == 2:
		return TwoPair
	case highPair:
		return JacksOrBetter
	}
	return NoWin
}

// VideoPoker is a five-card draw: deal, hold any subset, draw once.
type VideoPoker struct {
	deck     *Deck
	paytable map[HandRank]decimal.Decimal
	hand     []Card
	done     bool
}

type VideoPokerView struct {
	Hand []Card `json:"hand"`
	Rank string `json:"rank"`
	Done bool   `json:"done"`
}

func NewVideoPoker(src Source, paytable map[HandRank]decimal.Decimal) *VideoPoker {
	v := &VideoPoker{deck: NewShuffledDeck(src), paytable: paytable}
	for i := 0; i < 5; i++ {
		c, _ := v.deck.Deal()
		v.hand = append(v.hand, c)
	}
	return v
}

func (v *VideoPoker) Apply(a models.Action) error {
	if v.done {
		return ErrSessionOver
	}
	if a.Kind != models.ActionDraw {
		return unsupported(a.Kind)
	}

	held := make(map[int]bool, len(a.Held))
	for _, i := range a.Held {
		if i < 0 || i >= len(v.hand) {
			return fmt.Errorf("%w: hold position %d", ErrInvalidSelection, i)
		}
		held[i] = true
	}
	for i := range v.hand {
		if held[i] {
			continue
		}
		c, err := v.deck.Deal()
		if err != nil {
			return err
		}
		v.hand[i] = c
	}
	v.done = true
	return nil
}

func (v *VideoPoker) Finished() bool {
	return v.done
}

// Forfeit keeps the dealt hand.
func (v *VideoPoker) Forfeit() {
	v.done = true
}

func (v *VideoPoker) Outcome(stake int64) models.Outcome {
	rank := EvaluateHand(v.hand)
	multiplier, ok := v.paytable[rank]
	if !ok {
		return Loss(v.View())
	}
	return Win(stake, multiplier, v.View())
}

func (v *VideoPoker) View() any {
	return VideoPokerView{
		Hand: append([]Card(nil), v.hand...),
		Rank: EvaluateHand(v.hand).String(),
		Done: v.done,
	}
}
