package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/utils/money"
)

// exchangeRateService provides read access to configured exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateReader
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateReader) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// GetExchangeRate returns the rate converting fromCurrency into toCurrency.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	from, err := money.NormalizeCurrency(fromCurrency)
	if err != nil {
		return nil, err
	}
	to, err := money.NormalizeCurrency(toCurrency)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrInvalidArgument)
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, from, to)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("exchange rate %s->%s", from, to))
		}
		s.LogError(ctx, err, "Failed to find exchange rate")
		return nil, err
	}
	return rate, nil
}

// ListExchangeRates returns every configured rate.
func (s *exchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, err
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}
