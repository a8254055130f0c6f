package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/dto"
	"github.com/SscSPs/wallet_ledger/internal/utils/pagination"
)

// transactionQueryService reads the transactions a user participates in. It never locks.
type transactionQueryService struct {
	BaseService
	txnRepo    portsrepo.TransactionReader
	ledgerRepo portsrepo.LedgerReader
	maxLimit   int
}

// NewTransactionQueryService creates a new TransactionQueryService.
// maxLimit caps the page size; values <= 0 fall back to pagination.MaxLimit.
func NewTransactionQueryService(txnRepo portsrepo.TransactionReader, ledgerRepo portsrepo.LedgerReader, maxLimit int) portssvc.TransactionReaderSvc {
	if maxLimit <= 0 {
		maxLimit = pagination.MaxLimit
	}
	return &transactionQueryService{
		txnRepo:    txnRepo,
		ledgerRepo: ledgerRepo,
		maxLimit:   maxLimit,
	}
}

var _ portssvc.TransactionReaderSvc = (*transactionQueryService)(nil)

// ListTransactions returns one page of the user's transactions, newest first.
func (s *transactionQueryService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*domain.TransactionPage, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	var typ domain.TransactionType
	if params.Type != "" {
		parsed, ok := domain.ParseTransactionType(params.Type)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown transaction type %q", params.Type))
		}
		typ = parsed
	}

	page := pagination.Normalize(params.Limit, params.Page, s.maxLimit)
	filter := portsrepo.TransactionFilter{
		UserID: userID,
		Type:   typ,
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	txns, err := s.txnRepo.ListTransactionsByUser(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}
	total, err := s.txnRepo.CountTransactionsByUser(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions", slog.String("user_id", userID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}

	return &domain.TransactionPage{
		Transactions: txns,
		Total:        total,
		Limit:        page.Limit,
		Page:         page.Page,
	}, nil
}

// GetTransaction returns a transaction with its ledger entries if the user participates in it.
func (s *transactionQueryService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionForUser(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, txn.TransactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entries", slog.String("transaction_id", transactionID))
		return nil, err
	}
	txn.Entries = entries
	return txn, nil
}
