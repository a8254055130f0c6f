package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/SscSPs/wallet_ledger/internal/dto"
)

// TransactionWriterSvc executes money movements. It is the only writer of balances and ledger entries.
type TransactionWriterSvc interface {
	// CreateTransfer moves an amount between two accounts of the same currency.
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest) (*domain.Transaction, error)

	// CreateExchange converts an amount between two accounts of one owner through the system liquidity accounts.
	CreateExchange(ctx context.Context, req dto.CreateExchangeRequest) (*domain.Transaction, error)
}

// TransactionReaderSvc defines read access to the transactions a user participates in.
type TransactionReaderSvc interface {
	// ListTransactions returns one page of the user's transactions, newest first.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*domain.TransactionPage, error)

	// GetTransaction returns a transaction with its ledger entries if the user participates in it.
	GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)
}

// SystemAccountResolver maps a currency to the platform liquidity account for it.
type SystemAccountResolver interface {
	Resolve(ctx context.Context, currency string) (string, error)
	Invalidate()
}
