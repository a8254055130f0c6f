package domain

import "github.com/shopspring/decimal"

// ExchangeRate converts an amount in FromCurrency into ToCurrency.
type ExchangeRate struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
}
