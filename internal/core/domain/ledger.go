package domain

import (
	"fmt"

	"github.com/SscSPs/wallet_ledger/internal/utils/money"
	"github.com/shopspring/decimal"
)

// LedgerEntry is one signed amount tying a transaction to an account.
// Currency is taken from the account; it is not stored on the ledger row.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
}

// ValidateZeroSum checks that the entries of every currency group sum to zero.
func ValidateZeroSum(entries []LedgerEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("ledger needs at least two entries, got %d", len(entries))
	}
	sums := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.Currency == "" {
			return fmt.Errorf("ledger entry for account %s has no currency", e.AccountID)
		}
		if e.Amount.IsZero() {
			return fmt.Errorf("ledger entry for account %s has zero amount", e.AccountID)
		}
		sums[e.Currency] = money.Add(sums[e.Currency], e.Amount)
	}
	for currency, sum := range sums {
		if !sum.IsZero() {
			return fmt.Errorf("ledger group %s is unbalanced by %s", currency, sum.String())
		}
	}
	return nil
}

// BalanceDeltas folds entries into one signed delta per account.
func BalanceDeltas(entries []LedgerEntry) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		deltas[e.AccountID] = money.Add(deltas[e.AccountID], e.Amount)
	}
	return deltas
}
