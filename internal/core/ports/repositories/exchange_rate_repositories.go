package repositories

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRate retrieves an exchange rate between two currencies.
	FindExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error)

	// ListExchangeRates returns every configured rate.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}
