package entities

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when more cards are requested than remain
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is a finite, depleting sequence of cards. The top of the deck is index 0.
type Deck struct {
	Cards []Card
}

// NewDeck creates a new deck of 52 cards, one of each rank and suit
func NewDeck() *Deck {
	cards := make([]Card, 0, len(Ranks)*len(Suits))
	for _, rank := range Ranks {
		for _, suit := range Suits {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return &Deck{Cards: cards}
}

// Shuffle applies a uniform random permutation using rng
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Draw removes and returns n cards from the top of the deck. The deck is left
// untouched when fewer than n cards remain.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot draw %d cards", n)
	}
	if n > len(d.Cards) {
		return nil, fmt.Errorf("%w: need %d cards, %d left", ErrDeckExhausted, n, len(d.Cards))
	}

	drawn := make([]Card, n)
	copy(drawn, d.Cards[:n])
	d.Cards = d.Cards[n:]
	return drawn, nil
}

// Remaining returns the number of cards left
func (d *Deck) Remaining() int {
	return len(d.Cards)
}
