package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/dto"
	"github.com/SscSPs/wallet_ledger/internal/utils/money"
)

// DefaultLockTimeout bounds how long an operation waits for account row locks.
const DefaultLockTimeout = 5 * time.Second

// transactionService is the only writer of balances and ledger entries.
type transactionService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionWriter
	ledgerRepo  portsrepo.LedgerWriter
	rateRepo    portsrepo.ExchangeRateReader
	resolver    portssvc.SystemAccountResolver

	lockTimeout time.Duration
	metrics     *Metrics
	now         func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithLockTimeout sets the row-lock wait bound of every scope.
func WithLockTimeout(d time.Duration) TransactionServiceOption {
	return func(s *transactionService) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithTransactionMetrics records engine outcomes.
func WithTransactionMetrics(m *Metrics) TransactionServiceOption {
	return func(s *transactionService) {
		s.metrics = m
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates the transfer and exchange engine.
func NewTransactionService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	txnRepo portsrepo.TransactionWriter,
	ledgerRepo portsrepo.LedgerWriter,
	rateRepo portsrepo.ExchangeRateReader,
	resolver portssvc.SystemAccountResolver,
	opts ...TransactionServiceOption,
) portssvc.TransactionWriterSvc {
	s := &transactionService{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		ledgerRepo:  ledgerRepo,
		rateRepo:    rateRepo,
		resolver:    resolver,
		lockTimeout: DefaultLockTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TransactionWriterSvc = (*transactionService)(nil)

// withinScope runs fn in one database transaction. Any error, or a panic, rolls it back.
func (s *transactionService) withinScope(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.txManager.BeginWithLockTimeout(ctx, s.lockTimeout)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := s.txManager.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back transaction")
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = s.txManager.Commit(ctx, tx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

// lockAccounts locks every distinct id in ascending order and returns the rows keyed by id.
// It is the only place the engine takes row locks.
func (s *transactionService) lockAccounts(ctx context.Context, tx pgx.Tx, ids ...string) (map[string]domain.Account, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	locked, err := s.accountRepo.LockAccountsForUpdate(ctx, tx, sorted)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Account, len(locked))
	for _, acc := range locked {
		byID[acc.AccountID] = acc
	}
	for _, id := range sorted {
		if _, ok := byID[id]; !ok {
			return nil, apperrors.NewNotFoundError("account " + id)
		}
	}
	return byID, nil
}

// canonicalAccountID returns id in the lowercase hyphenated form the store returns.
func canonicalAccountID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.NewValidationError(fmt.Sprintf("account id %q is not a UUID", id))
	}
	return parsed.String(), nil
}

// persist writes the header, the entries and the balance deltas of one transaction.
func (s *transactionService) persist(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	if err := domain.ValidateZeroSum(txn.Entries); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	if err := s.ledgerRepo.SaveEntriesInTx(ctx, tx, txn.Entries); err != nil {
		return fmt.Errorf("save ledger entries: %w", err)
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, domain.BalanceDeltas(txn.Entries)); err != nil {
		return fmt.Errorf("update balances: %w", err)
	}
	return nil
}

func (s *transactionService) newTransaction(typ domain.TransactionType, metadata domain.Metadata) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          typ,
		Status:        domain.TransactionStatusCompleted,
		Metadata:      metadata.Clone(),
		CreatedAt:     s.now(),
	}
}

func (s *transactionService) entry(txnID string, acc domain.Account, amount decimal.Decimal) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		TransactionID: txnID,
		AccountID:     acc.AccountID,
		Currency:      acc.Currency,
		Amount:        amount,
	}
}

// CreateTransfer moves an amount between two accounts of the same currency.
func (s *transactionService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest) (txn *domain.Transaction, err error) {
	started := time.Now()
	defer func() { s.metrics.observe(domain.TransactionTypeTransfer, started, err) }()

	logger := s.GetLogger(ctx).With(
		slog.String("sender_account_id", req.SenderAccountID),
		slog.String("receiver_account_id", req.ReceiverAccountID),
	)

	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if req.SenderAccountID == "" || req.ReceiverAccountID == "" {
		return nil, apperrors.NewValidationError("sender and receiver accounts are required")
	}
	if req.SenderAccountID, err = canonicalAccountID(req.SenderAccountID); err != nil {
		return nil, err
	}
	if req.ReceiverAccountID, err = canonicalAccountID(req.ReceiverAccountID); err != nil {
		return nil, err
	}
	if req.SenderAccountID == req.ReceiverAccountID {
		return nil, apperrors.NewValidationError("sender and receiver must differ")
	}

	result := s.newTransaction(domain.TransactionTypeTransfer, req.Metadata)

	err = s.withinScope(ctx, func(tx pgx.Tx) error {
		locked, err := s.lockAccounts(ctx, tx, req.SenderAccountID, req.ReceiverAccountID)
		if err != nil {
			return err
		}
		sender, receiver := locked[req.SenderAccountID], locked[req.ReceiverAccountID]

		if err := s.AuthorizeOwner(ctx, req.RequestedBy, sender); err != nil {
			return err
		}
		if sender.Currency != receiver.Currency {
			return fmt.Errorf("%w: sender is %s, receiver is %s", apperrors.ErrCurrencyMismatch, sender.Currency, receiver.Currency)
		}
		if !sender.Covers(amount) {
			return fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, money.Format(sender.Balance), money.Format(amount))
		}

		result.Entries = []domain.LedgerEntry{
			s.entry(result.TransactionID, sender, money.Sub(decimal.Zero, amount)),
			s.entry(result.TransactionID, receiver, amount),
		}
		return s.persist(ctx, tx, result)
	})
	if err != nil {
		logger.WarnContext(ctx, "Transfer rejected", slog.String("error", err.Error()))
		return nil, err
	}

	logger.InfoContext(ctx, "Transfer completed",
		slog.String("transaction_id", result.TransactionID),
		slog.String("amount", money.Format(amount)))
	return &result, nil
}

// CreateExchange converts an amount between two accounts of one owner.
// The system liquidity accounts of both currencies act as counterparties.
func (s *transactionService) CreateExchange(ctx context.Context, req dto.CreateExchangeRequest) (txn *domain.Transaction, err error) {
	started := time.Now()
	defer func() { s.metrics.observe(domain.TransactionTypeExchange, started, err) }()

	logger := s.GetLogger(ctx).With(
		slog.String("source_account_id", req.SourceAccountID),
		slog.String("destination_account_id", req.DestinationAccountID),
	)

	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if req.SourceAccountID == "" || req.DestinationAccountID == "" {
		return nil, apperrors.NewValidationError("source and destination accounts are required")
	}
	if req.SourceAccountID, err = canonicalAccountID(req.SourceAccountID); err != nil {
		return nil, err
	}
	if req.DestinationAccountID, err = canonicalAccountID(req.DestinationAccountID); err != nil {
		return nil, err
	}

	// Unlocked pre-checks; balances are re-read under lock below.
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.SourceAccountID, req.DestinationAccountID})
	if err != nil {
		return nil, fmt.Errorf("read exchange accounts: %w", err)
	}
	source, ok := accounts[req.SourceAccountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + req.SourceAccountID)
	}
	destination, ok := accounts[req.DestinationAccountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + req.DestinationAccountID)
	}
	if source.Currency == destination.Currency {
		return nil, fmt.Errorf("%w: both accounts hold %s", apperrors.ErrSameCurrency, source.Currency)
	}
	if source.UserID != destination.UserID {
		return nil, apperrors.ErrCrossOwnerExchange
	}
	if err := s.AuthorizeOwner(ctx, req.RequestedBy, source); err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, source.Currency, destination.Currency)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, fmt.Errorf("%w: %s->%s", apperrors.ErrRateNotFound, source.Currency, destination.Currency)
		}
		return nil, fmt.Errorf("find exchange rate: %w", err)
	}
	if !rate.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: %s->%s has non-positive rate", apperrors.ErrRateNotFound, source.Currency, destination.Currency)
	}

	converted := money.Convert(amount, rate.Rate)
	if !converted.IsPositive() {
		return nil, apperrors.NewValidationError("converted amount rounds to zero")
	}

	sysSourceID, err := s.resolver.Resolve(ctx, source.Currency)
	if err != nil {
		return nil, err
	}
	sysDestinationID, err := s.resolver.Resolve(ctx, destination.Currency)
	if err != nil {
		return nil, err
	}

	metadata := req.Metadata.Clone()
	metadata["source_currency"] = source.Currency
	metadata["destination_currency"] = destination.Currency
	metadata["source_amount"] = money.Format(amount)
	metadata["destination_amount"] = money.Format(converted)
	metadata["rate"] = rate.Rate.String()
	result := s.newTransaction(domain.TransactionTypeExchange, metadata)

	err = s.withinScope(ctx, func(tx pgx.Tx) error {
		locked, err := s.lockAccounts(ctx, tx, source.AccountID, destination.AccountID, sysSourceID, sysDestinationID)
		if err != nil {
			return err
		}
		userSrc, userDst := locked[source.AccountID], locked[destination.AccountID]
		sysSrc, sysDst := locked[sysSourceID], locked[sysDestinationID]

		if !userSrc.Covers(amount) {
			return fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, money.Format(userSrc.Balance), money.Format(amount))
		}
		if !sysDst.Covers(converted) {
			return fmt.Errorf("%w: %s pool holds %s, needs %s", apperrors.ErrInsufficientLiquidity, sysDst.Currency, money.Format(sysDst.Balance), money.Format(converted))
		}

		result.Entries = []domain.LedgerEntry{
			s.entry(result.TransactionID, userSrc, money.Sub(decimal.Zero, amount)),
			s.entry(result.TransactionID, sysSrc, amount),
			s.entry(result.TransactionID, sysDst, money.Sub(decimal.Zero, converted)),
			s.entry(result.TransactionID, userDst, converted),
		}
		return s.persist(ctx, tx, result)
	})
	if err != nil {
		logger.WarnContext(ctx, "Exchange rejected", slog.String("error", err.Error()))
		return nil, err
	}

	logger.InfoContext(ctx, "Exchange completed",
		slog.String("transaction_id", result.TransactionID),
		slog.String("source_amount", money.Format(amount)),
		slog.String("destination_amount", money.Format(converted)),
		slog.String("rate", rate.Rate.String()))
	return &result, nil
}
