package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
)

// ExchangeRateSvcFacade defines read operations for exchange rates
type ExchangeRateSvcFacade interface {
	GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}
