package game

import (
	"time"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// ESRoundResult represents a round document in Elasticsearch
type ESRoundResult struct {
	RoundID         string         `json:"round_id"`
	StartedAt       time.Time      `json:"started_at"`
	CompletedAt     time.Time      `json:"completed_at"`
	DealerCards     []string       `json:"dealer_cards"`
	DealerTotal     int            `json:"dealer_total"`
	DealerBlackjack bool           `json:"dealer_blackjack"`
	DealerBust      bool           `json:"dealer_bust"`
	Hands           []ESHandResult `json:"hands"`
}

// ESHandResult represents one player hand inside a round document
type ESHandResult struct {
	PlayerID  string   `json:"player_id"`
	HandIndex int      `json:"hand_index"`
	Cards     []string `json:"cards"`
	Total     int      `json:"total"`
	Bet       int64    `json:"bet"`
	Payout    int64    `json:"payout"`
	Outcome   string   `json:"outcome"`
	Doubled   bool     `json:"doubled"`
	Split     bool     `json:"split"`
}

// NewESRoundResult converts a round into its search document
func NewESRoundResult(result *entities.RoundResult) *ESRoundResult {
	doc := &ESRoundResult{
		RoundID:         result.ID,
		StartedAt:       result.StartedAt,
		CompletedAt:     result.CompletedAt,
		DealerCards:     cardStrings(result.DealerCards),
		DealerTotal:     result.DealerTotal,
		DealerBlackjack: result.DealerBlackjack,
		DealerBust:      result.DealerBust,
		Hands:           make([]ESHandResult, 0, len(result.Hands)),
	}

	for _, h := range result.Hands {
		doc.Hands = append(doc.Hands, ESHandResult{
			PlayerID:  h.PlayerID,
			HandIndex: h.HandIndex,
			Cards:     cardStrings(h.Cards),
			Total:     h.Total,
			Bet:       h.Bet,
			Payout:    h.Payout,
			Outcome:   h.Outcome.String(),
			Doubled:   h.Doubled,
			Split:     h.Split,
		})
	}

	return doc
}

func cardStrings(cards []entities.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
