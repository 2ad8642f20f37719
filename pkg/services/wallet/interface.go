package wallet

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// WalletService is what the command line front end needs from the wallet
type WalletService interface {
	OpenAccount(ctx context.Context, playerID string, buyIn int64) (*entities.Wallet, bool, error)
	GetBank(ctx context.Context, playerID string) (int64, error)
	GetRecentTransactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error)
}

var _ WalletService = (*Service)(nil)
