package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	walletRepo "github.com/fadedpez/blackjack/pkg/repositories/wallet"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
)

// Service handles wallet business logic. It is the bank the blackjack round
// moves money through.
type Service struct {
	repo   walletRepo.Repository
	logger *logging.Logger
	clock  quartz.Clock

	// serializes read-modify-write of balances
	mu sync.Mutex
}

// NewService creates a new wallet service. logger and clock may be nil.
func NewService(repo walletRepo.Repository, logger *logging.Logger, clock quartz.Clock) *Service {
	if logger == nil {
		logger = logging.Default
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Service{
		repo:   repo,
		logger: logger.Named("wallet"),
		clock:  clock,
	}
}

// OpenAccount returns the player's wallet, creating it with a buy-in of
// buyIn when it does not exist yet. The bool reports whether it was created.
func (s *Service) OpenAccount(ctx context.Context, playerID string, buyIn int64) (*entities.Wallet, bool, error) {
	if buyIn < 0 {
		return nil, false, types.WrapError(types.ErrInvalidBet, "buy-in cannot be negative", ErrNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.repo.GetWallet(ctx, playerID)
	if err == nil {
		return wallet, false, nil
	}
	if !errors.Is(err, walletRepo.ErrWalletNotFound) {
		return nil, false, types.WrapError(types.ErrDatabaseError, "failed to load wallet", err)
	}

	wallet = &entities.Wallet{
		PlayerID:    playerID,
		Balance:     buyIn,
		LastUpdated: s.clock.Now(),
	}
	if err := s.repo.SaveWallet(ctx, wallet); err != nil {
		return nil, false, types.WrapError(types.ErrDatabaseError, "failed to create wallet", err)
	}

	s.record(ctx, wallet, buyIn, entities.TransactionTypeBuyIn, "", "Buy-in")
	s.logger.Info("Opened account", "player", playerID, "balance", buyIn)
	return wallet, true, nil
}

// GetBank returns the current balance for a player
func (s *Service) GetBank(ctx context.Context, playerID string) (int64, error) {
	wallet, err := s.getWallet(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// Debit removes amount from the player's balance. It fails without changing
// anything when the balance is too small.
func (s *Service) Debit(ctx context.Context, playerID string, amount int64, txType entities.TransactionType, referenceID string) error {
	if amount <= 0 {
		return types.WrapError(types.ErrInvalidBet, "amount must be positive", ErrNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.getWallet(ctx, playerID)
	if err != nil {
		return err
	}

	if wallet.Balance < amount {
		return types.WrapError(types.ErrInsufficientFunds,
			fmt.Sprintf("you only have $%d", wallet.Balance), ErrInsufficientFunds)
	}

	wallet.Balance -= amount
	wallet.LastUpdated = s.clock.Now()
	if err := s.repo.SaveWallet(ctx, wallet); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to save wallet", err)
	}

	s.record(ctx, wallet, -amount, txType, referenceID, describe(txType))
	return nil
}

// Credit adds amount to the player's balance. A zero credit is a no-op.
func (s *Service) Credit(ctx context.Context, playerID string, amount int64, txType entities.TransactionType, referenceID string) error {
	if amount < 0 {
		return types.WrapError(types.ErrInternalError, "credit cannot be negative", ErrNegativeAmount)
	}
	if amount == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.getWallet(ctx, playerID)
	if err != nil {
		return err
	}

	wallet.Balance += amount
	wallet.LastUpdated = s.clock.Now()
	if err := s.repo.SaveWallet(ctx, wallet); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to save wallet", err)
	}

	s.record(ctx, wallet, amount, txType, referenceID, describe(txType))
	return nil
}

// GetRecentTransactions retrieves recent transactions for a player
func (s *Service) GetRecentTransactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error) {
	return s.repo.GetTransactions(ctx, playerID, limit)
}

func (s *Service) getWallet(ctx context.Context, playerID string) (*entities.Wallet, error) {
	wallet, err := s.repo.GetWallet(ctx, playerID)
	if err != nil {
		if errors.Is(err, walletRepo.ErrWalletNotFound) {
			return nil, types.WrapError(types.ErrPlayerNotFound, fmt.Sprintf("no wallet for player %s", playerID), err)
		}
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load wallet", err)
	}
	return wallet, nil
}

// record writes the ledger entry for a balance change. The balance is already
// saved, so a failure here is logged rather than returned.
func (s *Service) record(ctx context.Context, wallet *entities.Wallet, amount int64, txType entities.TransactionType, referenceID, description string) {
	transaction := &entities.Transaction{
		ID:           uuid.New().String(),
		PlayerID:     wallet.PlayerID,
		Amount:       amount,
		Type:         txType,
		ReferenceID:  referenceID,
		Description:  description,
		Timestamp:    s.clock.Now(),
		BalanceAfter: wallet.Balance,
	}

	if err := s.repo.AddTransaction(ctx, transaction); err != nil {
		s.logger.Error("Failed to record transaction", "player", wallet.PlayerID, "type", txType, "error", err)
	}
}

func describe(txType entities.TransactionType) string {
	switch txType {
	case entities.TransactionTypeBuyIn:
		return "Buy-in"
	case entities.TransactionTypeBet:
		return "Blackjack bet"
	case entities.TransactionTypeDouble:
		return "Double down"
	case entities.TransactionTypeSplit:
		return "Split hand"
	case entities.TransactionTypePayout:
		return "Blackjack payout"
	case entities.TransactionTypeRefund:
		return "Bet refunded"
	default:
		return string(txType)
	}
}
