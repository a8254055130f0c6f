package repositories

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data. Reads never lock.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByUser returns the accounts of a user, optionally filtered by currency.
	ListAccountsByUser(ctx context.Context, userID string, currency string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccountsInTx inserts new accounts within a given transaction.
	SaveAccountsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error
}

// AccountTransactionSupport defines operations that support account transactions
type AccountTransactionSupport interface {
	// LockAccountsForUpdate locks the given accounts in ascending ID order with one statement
	// and returns them in that order.
	LockAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) ([]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas within a given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
