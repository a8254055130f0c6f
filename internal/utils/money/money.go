package money

import (
	"fmt"
	"strings"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MinorUnits is the number of fractional digits kept for every supported currency.
const MinorUnits = 2

// maxAmountLen and maxExponent bound what ParseAmount will hand to the decimal rescaler.
// NUMERIC(20, 2) columns never need more.
const (
	maxAmountLen = 64
	maxExponent  = 20
)

// MaxAmount is the exclusive upper bound of a single amount; balances are NUMERIC(20, 2).
var MaxAmount = decimal.New(1, 18)

// ParseAmount parses a positive decimal string with at most MinorUnits fractional digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", apperrors.ErrInvalidArgument)
	}
	if len(s) > maxAmountLen {
		return decimal.Zero, fmt.Errorf("%w: amount is too long", apperrors.ErrInvalidArgument)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a decimal", apperrors.ErrInvalidArgument, s)
	}
	if exp := amount.Exponent(); exp < -maxExponent || exp > maxExponent {
		return decimal.Zero, fmt.Errorf("%w: amount %q is out of range", apperrors.ErrInvalidArgument, s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidArgument)
	}
	if Cmp(amount, MaxAmount) >= 0 {
		return decimal.Zero, fmt.Errorf("%w: amount %q exceeds the maximum", apperrors.ErrInvalidArgument, s)
	}
	if -amount.Exponent() > MinorUnits && !amount.Equal(amount.Truncate(MinorUnits)) {
		return decimal.Zero, fmt.Errorf("%w: amount has more than %d decimal places", apperrors.ErrInvalidArgument, MinorUnits)
	}
	return amount, nil
}

// Add returns a + b.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// Sub returns a - b.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b)
}

// Cmp returns -1, 0 or +1 as a is less than, equal to or greater than b.
func Cmp(a, b decimal.Decimal) int {
	return a.Cmp(b)
}

// Convert multiplies amount by rate and rounds half away from zero to MinorUnits places.
func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(MinorUnits)
}

// Format renders an amount with exactly MinorUnits fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(MinorUnits)
}

// NormalizeCurrency upper-cases an ISO 4217 code and checks it is three letters.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency %q must be a 3-letter ISO 4217 code", apperrors.ErrInvalidArgument, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: currency %q must be a 3-letter ISO 4217 code", apperrors.ErrInvalidArgument, code)
		}
	}
	return code, nil
}
