package entities

import (
	"time"
)

// Wallet holds a player's bank for the session
type Wallet struct {
	PlayerID    string
	Balance     int64
	LastUpdated time.Time
}

// TransactionType represents the type of wallet transaction
type TransactionType string

const (
	TransactionTypeBuyIn  TransactionType = "BUY_IN"
	TransactionTypeBet    TransactionType = "BET"
	TransactionTypeDouble TransactionType = "DOUBLE"
	TransactionTypeSplit  TransactionType = "SPLIT"
	TransactionTypePayout TransactionType = "PAYOUT"
	TransactionTypeRefund TransactionType = "REFUND"
)

// Transaction represents a single wallet transaction
type Transaction struct {
	ID           string          // Unique identifier
	PlayerID     string          // Player associated with the transaction
	Amount       int64           // Positive for credits, negative for debits
	Type         TransactionType // Type of transaction
	ReferenceID  string          // Round ID, when the transaction belongs to a round
	Description  string          // Human-readable description
	Timestamp    time.Time       // When the transaction occurred
	BalanceAfter int64           // Balance after this transaction
}
