package blackjack

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fadedpez/blackjack/pkg/entities"
)

var (
	ErrHandDone  = errors.New("hand is done")
	ErrHandEmpty = errors.New("hand has no cards")
)

// Hand is an ordered set of cards with its wager. The values are recomputed on
// every mutation so they always match the cards.
type Hand struct {
	cards  []entities.Card
	values []int
	bet    int64
	done   bool

	// HideHoleCard hides the first card when rendering (the dealer's hole card)
	HideHoleCard bool
	// Doubled is set once the bet was doubled
	Doubled bool
	// Split marks hands that took part in a split
	Split bool
}

// NewHand creates a hand carrying bet and holding the given cards
func NewHand(bet int64, cards ...entities.Card) *Hand {
	h := &Hand{bet: bet}
	h.cards = append(h.cards, cards...)
	h.recompute()
	return h
}

func (h *Hand) recompute() {
	h.values = ComputeValues(h.cards)
}

// AddCards appends cards in deal order
func (h *Hand) AddCards(cards ...entities.Card) {
	h.cards = append(h.cards, cards...)
	h.recompute()
}

// PopCard removes and returns the most recently dealt card
func (h *Hand) PopCard() (entities.Card, error) {
	if len(h.cards) == 0 {
		return entities.Card{}, ErrHandEmpty
	}
	last := h.cards[len(h.cards)-1]
	h.cards = h.cards[:len(h.cards)-1]
	h.recompute()
	return last, nil
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []entities.Card {
	return append([]entities.Card(nil), h.cards...)
}

// Len returns the number of cards
func (h *Hand) Len() int {
	return len(h.cards)
}

// Values returns every legal total, ascending
func (h *Hand) Values() []int {
	return append([]int(nil), h.values...)
}

// BestTotal returns the highest non-busting total, or 0 when bust
func (h *Hand) BestTotal() int {
	return BestTotal(h.values)
}

// IsBust reports whether every total is over 21
func (h *Hand) IsBust() bool {
	return IsBust(h.values)
}

// IsBlackjack reports a two card 21
func (h *Hand) IsBlackjack() bool {
	return IsBlackjack(len(h.cards), h.values)
}

// IsPair reports two cards of identical rank
func (h *Hand) IsPair() bool {
	return len(h.cards) == InitialCards && h.cards[0].Rank == h.cards[1].Rank
}

// Bet returns the amount wagered on this hand
func (h *Hand) Bet() int64 {
	return h.bet
}

// SetBet replaces the wager
func (h *Hand) SetBet(amount int64) {
	h.bet = amount
}

// Done reports whether the hand's turn is over: stood, doubled, bust or blackjack.
func (h *Hand) Done() bool {
	return h.done || h.IsBust() || h.IsBlackjack()
}

// Finish ends the hand's turn
func (h *Hand) Finish() {
	h.done = true
}

// String renders the cards and totals, e.g. "cards: A♠-K♡ | values: 11/21".
// With HideHoleCard set the first card and the totals are masked.
func (h *Hand) String() string {
	cards := make([]string, 0, len(h.cards))
	for i, card := range h.cards {
		if i == 0 && h.HideHoleCard {
			cards = append(cards, "*")
			continue
		}
		cards = append(cards, card.String())
	}

	value := "*"
	if !h.HideHoleCard {
		values := make([]string, 0, len(h.values))
		for _, v := range h.values {
			values = append(values, strconv.Itoa(v))
		}
		value = strings.Join(values, "/")
	}
	return "cards: " + strings.Join(cards, "-") + " | values: " + value
}
