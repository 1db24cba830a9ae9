package games

import (
	"errors"
	"fmt"
)

var ErrDeckEmpty = errors.New("deck is empty")

type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

var suitSymbols = [...]string{"♠", "♥", "♦", "♣"}

func (s Suit) String() string {
	if s < Spades || s > Clubs {
		return "?"
	}
	return suitSymbols[s]
}

type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	return fmt.Sprintf("%d", int(r))
}

type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// NewDeck returns the 52 cards in suit-major order.
func NewDeck() []Card {
	cards := make([]Card, 0, 52)
	for s := Spades; s <= Clubs; s++ {
		for r := Two; r <= Ace; r++ {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return cards
}

// Shuffle is an in-place Fisher–Yates shuffle.
func Shuffle(src Source, cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := Intn(src, i+1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

type Deck struct {
	cards []Card
}

func NewShuffledDeck(src Source) *Deck {
	cards := NewDeck()
	Shuffle(src, cards)
	return &Deck{cards: cards}
}

// Deal takes the card at the front of the deck.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckEmpty
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

func (d *Deck) Len() int {
	return len(d.cards)
}
