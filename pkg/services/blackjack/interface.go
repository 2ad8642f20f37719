package blackjack

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_blackjack

// Shoe deals cards for one round
type Shoe interface {
	Draw(n int) ([]entities.Card, error)
}

// Bank is the table bookkeeping the round moves money through. Debit must fail
// with a types.ErrInsufficientFunds GameError when amount exceeds the balance.
type Bank interface {
	GetBank(ctx context.Context, playerID string) (int64, error)
	Debit(ctx context.Context, playerID string, amount int64, txType entities.TransactionType, referenceID string) error
	Credit(ctx context.Context, playerID string, amount int64, txType entities.TransactionType, referenceID string) error
}

// Prompter asks the humans at the table for decisions and shows them what
// happened. Calls are synchronous.
type Prompter interface {
	// AskBet asks a player how much to wager out of bank
	AskBet(ctx context.Context, player *Player, bank int64) (int64, error)
	// AskAction asks for a decision on hand; legal is never empty
	AskAction(ctx context.Context, view TableView, player *Player, hand *Hand, legal []Action) (Action, error)
	// Announce shows the table together with a message
	Announce(ctx context.Context, view TableView, message string)
	// AskContinue asks whether to deal another round
	AskContinue(ctx context.Context) (bool, error)
}

// TableView is what a prompter may render
type TableView struct {
	Players []*Player
	Dealer  *Dealer
}
