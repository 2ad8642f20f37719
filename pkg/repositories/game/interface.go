package game

import (
	"context"
	"errors"

	"github.com/fadedpez/blackjack/pkg/entities"
)

var (
	ErrRoundNotFound = errors.New("round not found")
)

// Repository defines storage operations for completed rounds
type Repository interface {
	// SaveRoundResult records a completed round with all of its hands
	SaveRoundResult(ctx context.Context, result *entities.RoundResult) error

	// GetRoundResult retrieves one round by ID
	GetRoundResult(ctx context.Context, roundID string) (*entities.RoundResult, error)

	// GetPlayerResults retrieves the rounds a player had hands in, newest first
	GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error)

	// GetRecentResults retrieves the latest rounds at the table, newest first
	GetRecentResults(ctx context.Context, limit int) ([]*entities.RoundResult, error)

	// Statistics aggregated over stored hands
	GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error)
	GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error)

	// Close closes any resources used by the repository
	Close() error
}
