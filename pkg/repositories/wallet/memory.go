package wallet

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	wallets      map[string]*entities.Wallet
	transactions map[string][]*entities.Transaction
	mu           sync.RWMutex
}

// NewMemoryRepository creates a new in-memory wallet repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		wallets:      make(map[string]*entities.Wallet),
		transactions: make(map[string][]*entities.Transaction),
	}
}

// GetWallet retrieves a wallet by player ID
func (r *MemoryRepository) GetWallet(ctx context.Context, playerID string) (*entities.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wallet, exists := r.wallets[playerID]
	if !exists {
		return nil, ErrWalletNotFound
	}

	// Return a copy to prevent concurrent modification
	walletCopy := *wallet
	return &walletCopy, nil
}

// SaveWallet creates or updates a wallet
func (r *MemoryRepository) SaveWallet(ctx context.Context, wallet *entities.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	walletCopy := *wallet
	r.wallets[wallet.PlayerID] = &walletCopy
	return nil
}

// AddTransaction records a new transaction
func (r *MemoryRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}

	txCopy := *transaction
	r.transactions[transaction.PlayerID] = append(r.transactions[transaction.PlayerID], &txCopy)
	return nil
}

// GetTransactions retrieves the most recent transactions for a player, oldest first
func (r *MemoryRepository) GetTransactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transactions := r.transactions[playerID]

	start := 0
	if len(transactions) > limit {
		start = len(transactions) - limit
	}

	result := make([]*entities.Transaction, 0, len(transactions)-start)
	for i := start; i < len(transactions); i++ {
		txCopy := *transactions[i]
		result = append(result, &txCopy)
	}
	return result, nil
}

// GetTransactionsByType retrieves transactions of a specific type, newest first
func (r *MemoryRepository) GetTransactionsByType(ctx context.Context, playerID string, transactionType entities.TransactionType, limit int) ([]*entities.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transactions := r.transactions[playerID]

	filtered := make([]*entities.Transaction, 0)
	for i := len(transactions) - 1; i >= 0 && len(filtered) < limit; i-- {
		if transactions[i].Type == transactionType {
			txCopy := *transactions[i]
			filtered = append(filtered, &txCopy)
		}
	}
	return filtered, nil
}

// Close is a no-op for the memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
