package game

import (
	"context"
	"sort"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// GetPlayerStatistics aggregates every stored hand of one player
func (r *MemoryRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &entities.PlayerStatistics{PlayerID: playerID}
	for _, round := range r.rounds {
		accumulate(stats, round, round.HandsFor(playerID))
	}
	return stats, nil
}

// GetAllPlayerStatistics aggregates every player that has played, best net profit first
func (r *MemoryRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byPlayer := make(map[string]*entities.PlayerStatistics)
	for _, round := range r.rounds {
		perRound := make(map[string][]*entities.HandResult)
		for _, h := range round.Hands {
			perRound[h.PlayerID] = append(perRound[h.PlayerID], h)
		}
		for playerID, hands := range perRound {
			stats, ok := byPlayer[playerID]
			if !ok {
				stats = &entities.PlayerStatistics{PlayerID: playerID}
				byPlayer[playerID] = stats
			}
			accumulate(stats, round, hands)
		}
	}

	statsList := make([]*entities.PlayerStatistics, 0, len(byPlayer))
	for _, stats := range byPlayer {
		statsList = append(statsList, stats)
	}
	sort.Slice(statsList, func(i, j int) bool {
		if statsList[i].NetProfit() != statsList[j].NetProfit() {
			return statsList[i].NetProfit() > statsList[j].NetProfit()
		}
		return statsList[i].PlayerID < statsList[j].PlayerID
	})
	return statsList, nil
}

// accumulate adds one round's hands for a single player to stats
func accumulate(stats *entities.PlayerStatistics, round *entities.RoundResult, hands []*entities.HandResult) {
	if len(hands) == 0 {
		return
	}

	stats.RoundsPlayed++
	if round.CompletedAt.After(stats.LastUpdated) {
		stats.LastUpdated = round.CompletedAt
	}

	for _, h := range hands {
		stats.HandsPlayed++
		stats.TotalBet += h.Bet
		stats.TotalWinnings += h.Payout

		switch h.Outcome {
		case entities.OutcomeBlackjack:
			stats.Wins++
			stats.Blackjacks++
		case entities.OutcomeWin:
			stats.Wins++
		case entities.OutcomePush:
			stats.Pushes++
		case entities.OutcomeBust:
			stats.Losses++
			stats.Busts++
		case entities.OutcomeLose:
			stats.Losses++
		}

		if h.Split {
			stats.Splits++
		}
		if h.Doubled {
			stats.DoubleDowns++
		}
	}
}
