package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/SscSPs/wallet_ledger/internal/utils/money"
	"github.com/SscSPs/wallet_ledger/internal/utils/pagination"
)

// CreateTransferRequest moves Amount between two accounts of the same currency.
type CreateTransferRequest struct {
	SenderAccountID   string          `json:"senderAccountID" binding:"required,uuid"`
	ReceiverAccountID string          `json:"receiverAccountID" binding:"required,uuid,nefield=SenderAccountID"`
	Amount            string          `json:"amount" binding:"required,decimal_amount"`
	Metadata          domain.Metadata `json:"metadata"`
	// RequestedBy is the authenticated caller; when set the sender must belong to it.
	RequestedBy string `json:"-"`
}

// CreateExchangeRequest converts Amount from the source account currency into the destination account.
type CreateExchangeRequest struct {
	SourceAccountID      string          `json:"sourceAccountID" binding:"required,uuid"`
	DestinationAccountID string          `json:"destinationAccountID" binding:"required,uuid,nefield=SourceAccountID"`
	Amount               string          `json:"amount" binding:"required,decimal_amount"`
	Metadata             domain.Metadata `json:"metadata"`
	RequestedBy          string          `json:"-"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit int    `form:"limit,default=10"`
	Page  int    `form:"page,default=1"`
	Type  string `form:"type"`
}

// LedgerEntryResponse is one signed ledger line.
type LedgerEntryResponse struct {
	EntryID   string `json:"entryID"`
	AccountID string `json:"accountID"`
	Currency  string `json:"currency"`
	Amount    string `json:"amount"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	Type          domain.TransactionType   `json:"type"`
	Status        domain.TransactionStatus `json:"status"`
	Metadata      domain.Metadata          `json:"metadata"`
	CreatedAt     time.Time                `json:"createdAt"`
	Entries       []LedgerEntryResponse    `json:"entries,omitempty"`
}

// ListTransactionsResponse wraps one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"totalPages"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          txn.Type,
		Status:        txn.Status,
		Metadata:      txn.Metadata,
		CreatedAt:     txn.CreatedAt,
	}
	if resp.Metadata == nil {
		resp.Metadata = domain.Metadata{}
	}
	for _, e := range txn.Entries {
		resp.Entries = append(resp.Entries, LedgerEntryResponse{
			EntryID:   e.EntryID,
			AccountID: e.AccountID,
			Currency:  e.Currency,
			Amount:    money.Format(e.Amount),
		})
	}
	return resp
}

// ToListTransactionsResponse converts a domain.TransactionPage to ListTransactionsResponse DTO
func ToListTransactionsResponse(page *domain.TransactionPage) ListTransactionsResponse {
	items := make([]TransactionResponse, len(page.Transactions))
	for i := range page.Transactions {
		items[i] = ToTransactionResponse(&page.Transactions[i])
	}
	return ListTransactionsResponse{
		Transactions: items,
		Total:        page.Total,
		Limit:        page.Limit,
		Page:         page.Page,
		TotalPages:   pagination.TotalPages(page.Total, page.Limit),
	}
}
