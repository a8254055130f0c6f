package repositories

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionFilter selects the transactions a user participates in.
// An empty Type matches every type.
type TransactionFilter struct {
	UserID string
	Type   domain.TransactionType
	Limit  int
	Offset int
}

// TransactionReader defines read operations for transaction headers
type TransactionReader interface {
	// ListTransactionsByUser returns one window of the user's transactions, newest first.
	ListTransactionsByUser(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)

	// CountTransactionsByUser counts all transactions matching the filter, ignoring the window.
	CountTransactionsByUser(ctx context.Context, filter TransactionFilter) (int, error)

	// FindTransactionForUser returns a transaction only if the user owns one of its ledger accounts.
	FindTransactionForUser(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction headers
type TransactionWriter interface {
	// SaveTransactionInTx inserts a transaction header within a given transaction.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
