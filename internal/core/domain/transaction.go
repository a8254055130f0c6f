package domain

import (
	"time"
)

// TransactionType identifies the operation that produced a transaction.
type TransactionType string

const (
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeExchange TransactionType = "exchange"
)

// ParseTransactionType accepts only the known types.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(s) {
	case TransactionTypeTransfer, TransactionTypeExchange:
		return TransactionType(s), true
	}
	return "", false
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	// TransactionStatusPending is modelled for asynchronous settlement and is never written today.
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Metadata is an opaque key-value bag persisted verbatim.
type Metadata map[string]any

// Clone returns a shallow copy so callers can add keys without touching the original.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m)+5)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Transaction is the header of one accepted transfer or exchange.
// It is immutable once written.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Metadata      Metadata          `json:"metadata"`
	CreatedAt     time.Time         `json:"createdAt"`
	Entries       []LedgerEntry     `json:"entries,omitempty"`
}

// TransactionPage is one offset window of a user's transactions.
type TransactionPage struct {
	Transactions []Transaction
	Total        int
	Limit        int
	Page         int
}
