package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/utils/money"
)

// accountService exposes read access to a user's wallets.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountReader) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ListAccounts returns the user's accounts, optionally filtered by currency.
func (s *accountService) ListAccounts(ctx context.Context, userID string, currency string) ([]domain.Account, error) {
	if currency != "" {
		normalized, err := money.NormalizeCurrency(currency)
		if err != nil {
			return nil, err
		}
		currency = normalized
	}

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID, currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}

	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}

// GetAccount returns one account owned by the user. Foreign accounts are reported as not found.
func (s *accountService) GetAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return account, nil
}
