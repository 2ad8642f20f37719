package entities

// Suit represents a card suit
type Suit string

const (
	Clubs    Suit = "♣"
	Diamonds Suit = "♢"
	Hearts   Suit = "♡"
	Spades   Suit = "♠"
)

// Rank represents a card rank
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// Ranks lists every rank in deck order
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Suits lists every suit in deck order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Card is an immutable playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String renders the card as rank followed by suit, e.g. "10♠"
func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}
