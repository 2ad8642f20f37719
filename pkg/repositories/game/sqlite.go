package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// SQLiteRepository implements the Repository interface using SQLite. The
// schema is owned by pkg/db/migrations.
type SQLiteRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewSQLiteRepository creates a round repository over an already migrated database
func NewSQLiteRepository(db *sql.DB, logger *logging.Logger) *SQLiteRepository {
	if logger == nil {
		logger = logging.Default
	}
	return &SQLiteRepository{db: db, logger: logger.Named("game_repo")}
}

// SaveRoundResult stores a round and its hands in one transaction. Saving the
// same round ID again replaces it.
func (r *SQLiteRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	dealerJSON, err := json.Marshal(result.DealerCards)
	if err != nil {
		return fmt.Errorf("failed to marshal dealer cards: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM hand_results WHERE round_id = ?`, result.ID); err != nil {
		return fmt.Errorf("failed to clear hand results: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rounds WHERE id = ?`, result.ID); err != nil {
		return fmt.Errorf("failed to clear round: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rounds (id, started_at, completed_at, dealer_cards, dealer_total, dealer_blackjack, dealer_bust)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.ID,
		result.StartedAt.UTC(),
		result.CompletedAt.UTC(),
		string(dealerJSON),
		result.DealerTotal,
		result.DealerBlackjack,
		result.DealerBust,
	)
	if err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}

	for _, hand := range result.Hands {
		cardsJSON, err := json.Marshal(hand.Cards)
		if err != nil {
			return fmt.Errorf("failed to marshal hand cards: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO hand_results (round_id, player_id, hand_index, cards, total, bet, payout, outcome, doubled, split)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.ID,
			hand.PlayerID,
			hand.HandIndex,
			string(cardsJSON),
			hand.Total,
			hand.Bet,
			hand.Payout,
			string(hand.Outcome),
			hand.Doubled,
			hand.Split,
		)
		if err != nil {
			return fmt.Errorf("failed to insert hand result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit round: %w", err)
	}

	r.logger.Debug("Saved round", "round", result.ID, "hands", len(result.Hands))
	return nil
}

// GetRoundResult retrieves one round by ID
func (r *SQLiteRepository) GetRoundResult(ctx context.Context, roundID string) (*entities.RoundResult, error) {
	var round entities.RoundResult
	var dealerJSON string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, started_at, completed_at, dealer_cards, dealer_total, dealer_blackjack, dealer_bust
		FROM rounds WHERE id = ?`, roundID).Scan(
		&round.ID,
		&round.StartedAt,
		&round.CompletedAt,
		&dealerJSON,
		&round.DealerTotal,
		&round.DealerBlackjack,
		&round.DealerBust,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	if err := json.Unmarshal([]byte(dealerJSON), &round.DealerCards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dealer cards: %w", err)
	}

	hands, err := r.getHands(ctx, roundID)
	if err != nil {
		return nil, err
	}
	round.Hands = hands

	return &round, nil
}

// GetPlayerResults retrieves the rounds a player had hands in, newest first
func (r *SQLiteRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	return r.getRounds(ctx, `
		SELECT r.id FROM rounds r
		WHERE EXISTS (SELECT 1 FROM hand_results h WHERE h.round_id = r.id AND h.player_id = ?)
		ORDER BY r.completed_at DESC, r.rowid DESC
		LIMIT ?`, playerID, limit)
}

// GetRecentResults retrieves the latest rounds, newest first
func (r *SQLiteRepository) GetRecentResults(ctx context.Context, limit int) ([]*entities.RoundResult, error) {
	return r.getRounds(ctx, `
		SELECT id FROM rounds
		ORDER BY completed_at DESC, rowid DESC
		LIMIT ?`, limit)
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) getRounds(ctx context.Context, query string, args ...any) ([]*entities.RoundResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan round id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating rounds: %w", err)
	}
	rows.Close()

	results := make([]*entities.RoundResult, 0, len(ids))
	for _, id := range ids {
		round, err := r.GetRoundResult(ctx, id)
		if err != nil {
			return nil, err
		}
		results = append(results, round)
	}
	return results, nil
}

func (r *SQLiteRepository) getHands(ctx context.Context, roundID string) ([]*entities.HandResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT player_id, hand_index, cards, total, bet, payout, outcome, doubled, split
		FROM hand_results WHERE round_id = ?
		ORDER BY id`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hand results: %w", err)
	}
	defer rows.Close()

	hands := make([]*entities.HandResult, 0)
	for rows.Next() {
		var hand entities.HandResult
		var cardsJSON, outcome string

		if err := rows.Scan(
			&hand.PlayerID,
			&hand.HandIndex,
			&cardsJSON,
			&hand.Total,
			&hand.Bet,
			&hand.Payout,
			&outcome,
			&hand.Doubled,
			&hand.Split,
		); err != nil {
			return nil, fmt.Errorf("failed to scan hand result: %w", err)
		}

		if err := json.Unmarshal([]byte(cardsJSON), &hand.Cards); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hand cards: %w", err)
		}
		hand.Outcome = entities.Outcome(outcome)
		hands = append(hands, &hand)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hand results: %w", err)
	}
	return hands, nil
}
