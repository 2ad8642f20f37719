package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/fadedpez/blackjack/pkg/entities"
)

const statisticsSelect = `
	SELECT h.player_id,
	       COUNT(DISTINCT h.round_id),
	       COUNT(*),
	       SUM(CASE WHEN h.outcome IN ('WIN', 'BLACKJACK') THEN 1 ELSE 0 END),
	       SUM(CASE WHEN h.outcome IN ('LOSE', 'BUST') THEN 1 ELSE 0 END),
	       SUM(CASE WHEN h.outcome = 'PUSH' THEN 1 ELSE 0 END),
	       SUM(CASE WHEN h.outcome = 'BLACKJACK' THEN 1 ELSE 0 END),
	       SUM(CASE WHEN h.outcome = 'BUST' THEN 1 ELSE 0 END),
	       SUM(CASE WHEN h.split THEN 1 ELSE 0 END),
	       SUM(CASE WHEN h.doubled THEN 1 ELSE 0 END),
	       SUM(h.bet),
	       SUM(h.payout),
	       MAX(r.completed_at)
	FROM hand_results h
	JOIN rounds r ON r.id = h.round_id
`

// GetPlayerStatistics aggregates every stored hand of one player
func (r *SQLiteRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	row := r.db.QueryRowContext(ctx, statisticsSelect+`
		WHERE h.player_id = ?
		GROUP BY h.player_id`, playerID)

	stats, err := scanStatistics(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Return empty statistics if the player has no hands yet
		return &entities.PlayerStatistics{PlayerID: playerID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player statistics: %w", err)
	}
	return stats, nil
}

// GetAllPlayerStatistics aggregates every player that has played, best net profit first
func (r *SQLiteRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	rows, err := r.db.QueryContext(ctx, statisticsSelect+`
		GROUP BY h.player_id
		ORDER BY SUM(h.payout) - SUM(h.bet) DESC, h.player_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query player statistics: %w", err)
	}
	defer rows.Close()

	statsList := make([]*entities.PlayerStatistics, 0)
	for rows.Next() {
		stats, err := scanStatistics(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player statistics: %w", err)
		}
		statsList = append(statsList, stats)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player statistics: %w", err)
	}
	return statsList, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStatistics(row scanner) (*entities.PlayerStatistics, error) {
	var stats entities.PlayerStatistics
	var lastPlayed string

	err := row.Scan(
		&stats.PlayerID, &stats.RoundsPlayed, &stats.HandsPlayed,
		&stats.Wins, &stats.Losses, &stats.Pushes,
		&stats.Blackjacks, &stats.Busts, &stats.Splits, &stats.DoubleDowns,
		&stats.TotalBet, &stats.TotalWinnings, &lastPlayed,
	)
	if err != nil {
		return nil, err
	}

	stats.LastUpdated, err = parseTimestamp(lastPlayed)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// parseTimestamp reads a TIMESTAMP that came back through an aggregate, where
// the driver no longer converts it for us
func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSuffix(value, "Z")
	for _, format := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(format, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("error parsing timestamp '%s'", value)
}
