package entities

import "time"

// Outcome is how a single player hand finished against the dealer
type Outcome string

const (
	OutcomeBlackjack Outcome = "BLACKJACK"
	OutcomeWin       Outcome = "WIN"
	OutcomePush      Outcome = "PUSH"
	OutcomeLose      Outcome = "LOSE"
	OutcomeBust      Outcome = "BUST"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// IsWin returns true if the hand was paid more than its bet
func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomeBlackjack
}

// HandResult records one resolved player hand
type HandResult struct {
	PlayerID  string  `json:"player_id"`
	HandIndex int     `json:"hand_index"`
	Cards     []Card  `json:"cards"`
	Total     int     `json:"total"`
	Bet       int64   `json:"bet"`
	Payout    int64   `json:"payout"`
	Outcome   Outcome `json:"outcome"`
	Doubled   bool    `json:"doubled"`
	Split     bool    `json:"split"`
}

// RoundResult records a completed round
type RoundResult struct {
	ID              string        `json:"id"`
	StartedAt       time.Time     `json:"started_at"`
	CompletedAt     time.Time     `json:"completed_at"`
	DealerCards     []Card        `json:"dealer_cards"`
	DealerTotal     int           `json:"dealer_total"`
	DealerBlackjack bool          `json:"dealer_blackjack"`
	DealerBust      bool          `json:"dealer_bust"`
	Hands           []*HandResult `json:"hands"`
}

// HandsFor returns the hands that belong to one player
func (r *RoundResult) HandsFor(playerID string) []*HandResult {
	hands := make([]*HandResult, 0)
	for _, h := range r.Hands {
		if h.PlayerID == playerID {
			hands = append(hands, h)
		}
	}
	return hands
}
