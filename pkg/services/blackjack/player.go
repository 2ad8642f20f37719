package blackjack

import (
	"strings"
)

// Player is a seat at the table. The bank lives with the Bank collaborator,
// keyed by ID; the player owns its hands.
type Player struct {
	ID    string
	Name  string
	Hands []*Hand
}

// NewPlayer creates a player with no hands
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
	}
}

// ResetHands discards every hand
func (p *Player) ResetHands() {
	p.Hands = nil
}

// String lists the player's name followed by one line per hand
func (p *Player) String() string {
	lines := []string{p.Name}
	for _, h := range p.Hands {
		lines = append(lines, h.String())
	}
	return strings.Join(lines, "\n")
}

// Dealer holds the house hand. The hole card stays hidden until Reveal.
type Dealer struct {
	Hand *Hand
}

// NewDealer creates a dealer with an empty hand and a hidden hole card
func NewDealer() *Dealer {
	h := NewHand(0)
	h.HideHoleCard = true
	return &Dealer{Hand: h}
}

// Reveal turns the hole card face up
func (d *Dealer) Reveal() {
	d.Hand.HideHoleCard = false
}

// String renders the dealer's hand
func (d *Dealer) String() string {
	return "Dealer\n" + d.Hand.String()
}
