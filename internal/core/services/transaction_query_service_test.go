package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/core/services"
	"github.com/SscSPs/wallet_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionQueryServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	mockTxns   *MockTransactionRepository
	mockLedger *MockLedgerRepository
	service    portssvc.TransactionReaderSvc
}

func (suite *TransactionQueryServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockTxns = new(MockTransactionRepository)
	suite.mockLedger = new(MockLedgerRepository)
	suite.service = services.NewTransactionQueryService(suite.mockTxns, suite.mockLedger, 100)
}

func (suite *TransactionQueryServiceTestSuite) TestListTransactions_Defaults() {
	filter := portsrepo.TransactionFilter{UserID: aliceID, Limit: 10, Offset: 0}
	txns := []domain.Transaction{
		{TransactionID: "t2", Type: domain.TransactionTypeExchange, CreatedAt: time.Now()},
		{TransactionID: "t1", Type: domain.TransactionTypeTransfer, CreatedAt: time.Now().Add(-time.Hour)},
	}
	suite.mockTxns.On("ListTransactionsByUser", suite.ctx, filter).Return(txns, nil).Once()
	suite.mockTxns.On("CountTransactionsByUser", suite.ctx, filter).Return(2, nil).Once()

	page, err := suite.service.ListTransactions(suite.ctx, aliceID, dto.ListTransactionsParams{Limit: 10, Page: 1})

	suite.Require().NoError(err)
	suite.Len(page.Transactions, 2)
	suite.Equal(2, page.Total)
	suite.Equal(10, page.Limit)
	suite.Equal(1, page.Page)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *TransactionQueryServiceTestSuite) TestListTransactions_ClampsWindow() {
	tests := []struct {
		name   string
		params dto.ListTransactionsParams
		filter portsrepo.TransactionFilter
	}{
		{"zero limit and page", dto.ListTransactionsParams{Limit: 0, Page: 0}, portsrepo.TransactionFilter{UserID: aliceID, Limit: 1, Offset: 0}},
		{"negative page", dto.ListTransactionsParams{Limit: 5, Page: -3}, portsrepo.TransactionFilter{UserID: aliceID, Limit: 5, Offset: 0}},
		{"limit above max", dto.ListTransactionsParams{Limit: 500, Page: 2}, portsrepo.TransactionFilter{UserID: aliceID, Limit: 100, Offset: 100}},
		{"third page", dto.ListTransactionsParams{Limit: 20, Page: 3, Type: "transfer"}, portsrepo.TransactionFilter{UserID: aliceID, Type: domain.TransactionTypeTransfer, Limit: 20, Offset: 40}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockTxns.On("ListTransactionsByUser", suite.ctx, tt.filter).Return(nil, nil).Once()
			suite.mockTxns.On("CountTransactionsByUser", suite.ctx, tt.filter).Return(0, nil).Once()

			page, err := suite.service.ListTransactions(suite.ctx, aliceID, tt.params)

			suite.Require().NoError(err)
			suite.NotNil(page.Transactions)
			suite.Empty(page.Transactions)
			suite.Equal(tt.filter.Limit, page.Limit)
			suite.mockTxns.AssertExpectations(suite.T())
		})
	}
}

func (suite *TransactionQueryServiceTestSuite) TestListTransactions_UnknownType() {
	_, err := suite.service.ListTransactions(suite.ctx, aliceID, dto.ListTransactionsParams{Limit: 10, Page: 1, Type: "Transfer"})

	suite.ErrorIs(err, apperrors.ErrInvalidArgument)
	suite.mockTxns.AssertNotCalled(suite.T(), "ListTransactionsByUser", mock.Anything, mock.Anything)
}

func (suite *TransactionQueryServiceTestSuite) TestGetTransaction_WithEntries() {
	txn := &domain.Transaction{TransactionID: "t1", Type: domain.TransactionTypeTransfer, Status: domain.TransactionStatusCompleted}
	entries := []domain.LedgerEntry{
		{EntryID: "e1", TransactionID: "t1", AccountID: "acc-a", Currency: "USD", Amount: dec("-5.00")},
		{EntryID: "e2", TransactionID: "t1", AccountID: "acc-b", Currency: "USD", Amount: dec("5.00")},
	}
	suite.mockTxns.On("FindTransactionForUser", suite.ctx, "t1", bobID).Return(txn, nil).Once()
	suite.mockLedger.On("FindEntriesByTransactionID", suite.ctx, "t1").Return(entries, nil).Once()

	got, err := suite.service.GetTransaction(suite.ctx, bobID, "t1")

	suite.Require().NoError(err)
	suite.Len(got.Entries, 2)
}

func (suite *TransactionQueryServiceTestSuite) TestGetTransaction_NotParticipant() {
	suite.mockTxns.On("FindTransactionForUser", suite.ctx, "t1", bobID).Return(nil, apperrors.NewNotFoundError("transaction t1")).Once()

	_, err := suite.service.GetTransaction(suite.ctx, bobID, "t1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedger.AssertNotCalled(suite.T(), "FindEntriesByTransactionID", mock.Anything, mock.Anything)
}

func TestTransactionQueryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionQueryServiceTestSuite))
}
