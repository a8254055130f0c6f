package domain

import (
	"time"

	"github.com/SscSPs/wallet_ledger/internal/utils/money"
	"github.com/shopspring/decimal"
)

// SystemUserID owns the platform liquidity accounts used as exchange counterparties.
const SystemUserID = "00000000-0000-0000-0000-000000000001"

// Account is a single-currency wallet owned by one user.
// Balance is never negative and only changes through the transaction engine.
type Account struct {
	AccountID string          `json:"accountID"`
	UserID    string          `json:"userID"`
	Currency  string          `json:"currency"` // ISO 4217
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Covers reports whether the account balance can pay amount.
func (a Account) Covers(amount decimal.Decimal) bool {
	return money.Cmp(a.Balance, amount) >= 0
}
