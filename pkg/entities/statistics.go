package entities

import "time"

// PlayerStatistics represents aggregated blackjack statistics for a player
type PlayerStatistics struct {
	PlayerID      string
	RoundsPlayed  int
	HandsPlayed   int
	Wins          int
	Losses        int
	Pushes        int
	Blackjacks    int
	Busts         int
	Splits        int
	DoubleDowns   int
	TotalBet      int64
	TotalWinnings int64
	LastUpdated   time.Time
}

// NetProfit calculates the player's net profit
func (s *PlayerStatistics) NetProfit() int64 {
	return s.TotalWinnings - s.TotalBet
}

// WinRate calculates the player's hand win rate as a percentage
func (s *PlayerStatistics) WinRate() float64 {
	if s.HandsPlayed == 0 {
		return 0.0
	}
	return float64(s.Wins) / float64(s.HandsPlayed) * 100.0
}
