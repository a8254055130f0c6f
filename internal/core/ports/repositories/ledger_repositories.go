package repositories

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindEntriesByTransactionID returns the entries of a transaction with their account currency.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries. Entries are insert-only.
type LedgerWriter interface {
	// SaveEntriesInTx inserts ledger entries within a given transaction.
	SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
