package wallet

import (
	"context"
	"errors"

	"github.com/fadedpez/blackjack/pkg/entities"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
)

// Repository defines the interface for wallet data operations
type Repository interface {
	// GetWallet retrieves a wallet by player ID
	GetWallet(ctx context.Context, playerID string) (*entities.Wallet, error)

	// SaveWallet creates or updates a wallet
	SaveWallet(ctx context.Context, wallet *entities.Wallet) error

	// AddTransaction records a new transaction
	AddTransaction(ctx context.Context, transaction *entities.Transaction) error

	// GetTransactions retrieves the most recent transactions for a player, oldest first
	GetTransactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error)

	// GetTransactionsByType retrieves transactions of a specific type, newest first
	GetTransactionsByType(ctx context.Context, playerID string, transactionType entities.TransactionType, limit int) ([]*entities.Transaction, error)

	// Close releases any resources used by the repository
	Close() error
}
