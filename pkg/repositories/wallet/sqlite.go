package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// SQLiteRepository implements Repository using SQLite. The schema is owned by
// pkg/db/migrations.
type SQLiteRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewSQLiteRepository creates a wallet repository over an already migrated database
func NewSQLiteRepository(db *sql.DB, logger *logging.Logger) *SQLiteRepository {
	if logger == nil {
		logger = logging.Default
	}
	return &SQLiteRepository{db: db, logger: logger.Named("wallet_repo")}
}

// GetWallet retrieves a wallet by player ID
func (r *SQLiteRepository) GetWallet(ctx context.Context, playerID string) (*entities.Wallet, error) {
	query := `SELECT player_id, balance, updated_at FROM wallets WHERE player_id = ?`

	var wallet entities.Wallet
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(
		&wallet.PlayerID,
		&wallet.Balance,
		&wallet.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("error getting wallet: %w", err)
	}

	return &wallet, nil
}

// SaveWallet creates or updates a wallet
func (r *SQLiteRepository) SaveWallet(ctx context.Context, wallet *entities.Wallet) error {
	r.logger.Debug("Saving wallet", "player", wallet.PlayerID, "balance", wallet.Balance)

	query := `
		INSERT INTO wallets (player_id, balance, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			balance = excluded.balance,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, wallet.PlayerID, wallet.Balance, wallet.LastUpdated.UTC())
	if err != nil {
		return fmt.Errorf("error saving wallet: %w", err)
	}
	return nil
}

// AddTransaction records a new transaction
func (r *SQLiteRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}

	query := `
		INSERT INTO transactions (id, player_id, amount, type, reference_id, description, timestamp, balance_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.PlayerID,
		transaction.Amount,
		string(transaction.Type),
		transaction.ReferenceID,
		transaction.Description,
		transaction.Timestamp.UTC(),
		transaction.BalanceAfter,
	)
	if err != nil {
		return fmt.Errorf("error adding transaction: %w", err)
	}
	return nil
}

// GetTransactions retrieves the most recent transactions for a player, oldest first
func (r *SQLiteRepository) GetTransactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT id, player_id, amount, type, reference_id, description, timestamp, balance_after
		FROM (
			SELECT *, rowid AS seq FROM transactions
			WHERE player_id = ?
			ORDER BY seq DESC
			LIMIT ?
		)
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetTransactionsByType retrieves transactions of a specific type, newest first
func (r *SQLiteRepository) GetTransactionsByType(ctx context.Context, playerID string, transactionType entities.TransactionType, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT id, player_id, amount, type, reference_id, description, timestamp, balance_after
		FROM transactions
		WHERE player_id = ? AND type = ?
		ORDER BY rowid DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, playerID, string(transactionType), limit)
	if err != nil {
		return nil, fmt.Errorf("error getting transactions by type: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanTransactions(rows *sql.Rows) ([]*entities.Transaction, error) {
	var transactions []*entities.Transaction
	for rows.Next() {
		var tx entities.Transaction
		var txType string
		var referenceID, description sql.NullString

		err := rows.Scan(
			&tx.ID,
			&tx.PlayerID,
			&tx.Amount,
			&txType,
			&referenceID,
			&description,
			&tx.Timestamp,
			&tx.BalanceAfter,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}

		tx.Type = entities.TransactionType(txType)
		tx.ReferenceID = referenceID.String
		tx.Description = description.String
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}
