package money

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "30.00", want: "30"},
		{in: " 100.5 ", want: "100.5"},
		{in: "0.01", want: "0.01"},
		{in: "12.300", want: "12.3"},
		{in: "0", wantErr: true},
		{in: "-5.00", wantErr: true},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.005", wantErr: true},
		{in: "1.5e1", want: "15"},
		{in: "1e-20000000", wantErr: true},
		{in: "1e-2000000000", wantErr: true},
		{in: "1e2000000000", wantErr: true},
		{in: "1e18", wantErr: true},
		{in: "999999999999999999.99", want: "999999999999999999.99"},
		{in: "1" + strings.Repeat("0", 100), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		amount, rate, want string
	}{
		{"100.00", "0.90", "90.00"},
		{"10.00", "1.0855", "10.86"},
		{"0.05", "0.5", "0.03"},   // 0.025 rounds away from zero
		{"1.00", "0.125", "0.13"}, // 0.125 rounds away from zero
		{"3.33", "1", "3.33"},
	}
	for _, tt := range tests {
		got := Convert(decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.rate))
		assert.Equal(t, tt.want, Format(got), "%s x %s", tt.amount, tt.rate)
	}
}

func TestArithmetic(t *testing.T) {
	a := decimal.RequireFromString("10.25")
	b := decimal.RequireFromString("0.75")

	assert.Equal(t, "11.00", Format(Add(a, b)))
	assert.Equal(t, "9.50", Format(Sub(a, b)))
	assert.Equal(t, "-0.75", Format(Sub(decimal.Zero, b)))
	assert.Equal(t, 1, Cmp(a, b))
	assert.Equal(t, -1, Cmp(b, a))
	assert.Equal(t, 0, Cmp(a, decimal.RequireFromString("10.250")))
}

func TestParseAmount_HugeExponentFailsFast(t *testing.T) {
	start := time.Now()
	_, err := ParseAmount("1e-2147483648")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestNormalizeCurrency(t *testing.T) {
	got, err := NormalizeCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, "USD", got)

	for _, bad := range []string{"", "US", "USDT", "U$D", "12A"} {
		_, err := NormalizeCurrency(bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument, bad)
	}
}
