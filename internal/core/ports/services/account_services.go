package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// ListAccounts returns the user's accounts, optionally filtered by currency.
	ListAccounts(ctx context.Context, userID string, currency string) ([]domain.Account, error)

	// GetAccount returns one account owned by the user.
	GetAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
}
