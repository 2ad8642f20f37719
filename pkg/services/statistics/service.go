package statistics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/coder/quartz"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/repositories/game"
)

// Service provides methods for retrieving and processing player statistics
type Service struct {
	repository game.Repository
	clock      quartz.Clock
}

// NewService creates a new statistics service. clock may be nil.
func NewService(repository game.Repository, clock quartz.Clock) *Service {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Service{
		repository: repository,
		clock:      clock,
	}
}

// PlayerStats returns the aggregated results of every stored hand of a player
func (s *Service) PlayerStats(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	stats, err := s.repository.GetPlayerStatistics(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics for %s: %w", playerID, err)
	}
	return stats, nil
}

// PlayerRank represents a player's statistics with ranking information
type PlayerRank struct {
	*entities.PlayerStatistics
	Rank        int     `json:"rank"`
	WinRate     float64 `json:"win_rate"`
	ProfitRate  float64 `json:"profit_rate"`
	IsTopWinner bool    `json:"is_top_winner"`
	IsTopPlayer bool    `json:"is_top_player"`
}

// Leaderboard represents a paginated leaderboard of player statistics
type Leaderboard struct {
	Players        []*PlayerRank `json:"players"`
	TotalPlayers   int           `json:"total_players"`
	CurrentPage    int           `json:"current_page"`
	TotalPages     int           `json:"total_pages"`
	PlayersPerPage int           `json:"players_per_page"`
	LastUpdated    time.Time     `json:"last_updated"`
}

// GetLeaderboard ranks every player by net profit and returns one page of it
func (s *Service) GetLeaderboard(ctx context.Context, page, playersPerPage int) (*Leaderboard, error) {
	if page < 1 {
		page = 1
	}
	if playersPerPage < 1 {
		playersPerPage = 10
	}

	allStats, err := s.repository.GetAllPlayerStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics: %w", err)
	}

	playerRanks := make([]*PlayerRank, 0, len(allStats))
	for _, stats := range allStats {
		if stats.HandsPlayed == 0 {
			continue
		}

		var profitRate float64
		if stats.TotalBet > 0 {
			profitRate = float64(stats.TotalWinnings) / float64(stats.TotalBet)
		}

		playerRanks = append(playerRanks, &PlayerRank{
			PlayerStatistics: stats,
			WinRate:          stats.WinRate(),
			ProfitRate:       profitRate,
		})
	}

	sort.SliceStable(playerRanks, func(i, j int) bool {
		return playerRanks[i].NetProfit() > playerRanks[j].NetProfit()
	})

	if len(playerRanks) > 0 {
		playerRanks[0].IsTopWinner = true

		mostHandsIdx := 0
		for i := 1; i < len(playerRanks); i++ {
			if playerRanks[i].HandsPlayed > playerRanks[mostHandsIdx].HandsPlayed {
				mostHandsIdx = i
			}
		}
		playerRanks[mostHandsIdx].IsTopPlayer = true
	}

	for i := range playerRanks {
		playerRanks[i].Rank = i + 1
	}

	totalPlayers := len(playerRanks)
	totalPages := (totalPlayers + playersPerPage - 1) / playersPerPage
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	start := (page - 1) * playersPerPage
	end := min(start+playersPerPage, totalPlayers)

	currentPagePlayers := []*PlayerRank{}
	if start < totalPlayers {
		currentPagePlayers = playerRanks[start:end]
	}

	return &Leaderboard{
		Players:        currentPagePlayers,
		TotalPlayers:   totalPlayers,
		CurrentPage:    page,
		TotalPages:     totalPages,
		PlayersPerPage: playersPerPage,
		LastUpdated:    s.clock.Now(),
	}, nil
}
