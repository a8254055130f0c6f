package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository reads the app.exchange_rates table.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateReader {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ExchangeRateReader = (*PgxExchangeRateRepository)(nil)

// FindExchangeRate retrieves the rate for converting fromCurrency into toCurrency.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	fromCurrency = strings.ToUpper(fromCurrency)
	toCurrency = strings.ToUpper(toCurrency)

	query := `
		SELECT from_currency, to_currency, rate
		FROM app.exchange_rates
		WHERE from_currency = $1 AND to_currency = $2;
	`
	var rate domain.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, fromCurrency, toCurrency).Scan(&rate.FromCurrency, &rate.ToCurrency, &rate.Rate)
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("find exchange rate %s->%s", fromCurrency, toCurrency))
	}
	return &rate, nil
}

// ListExchangeRates returns every configured rate ordered by currency pair.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT from_currency, to_currency, rate
		FROM app.exchange_rates
		ORDER BY from_currency, to_currency;
	`)
	if err != nil {
		return nil, mapPgError(err, "list exchange rates")
	}
	defer rows.Close()

	rates := []domain.ExchangeRate{}
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(&rate.FromCurrency, &rate.ToCurrency, &rate.Rate); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rate rows: %w", err)
	}
	return rates, nil
}
