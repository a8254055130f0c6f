package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestListAccounts_NormalizesCurrency() {
	ctx := context.Background()
	expected := []domain.Account{acct("acc-a", aliceID, "USD", "10.00")}
	suite.mockRepo.On("ListAccountsByUser", ctx, aliceID, "USD").Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, aliceID, "usd")

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyIsNotNil() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccountsByUser", ctx, aliceID, "").Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, aliceID, "")

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func (suite *AccountServiceTestSuite) TestListAccounts_BadCurrency() {
	_, err := suite.service.ListAccounts(context.Background(), aliceID, "DOLLARS")

	suite.ErrorIs(err, apperrors.ErrInvalidArgument)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAccountsByUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccountsByUser", ctx, aliceID, "").Return(nil, errors.New("db down")).Once()

	_, err := suite.service.ListAccounts(ctx, aliceID, "")

	suite.Error(err)
}

func (suite *AccountServiceTestSuite) TestGetAccount_Owned() {
	ctx := context.Background()
	account := acct("acc-a", aliceID, "EUR", "3.50")
	suite.mockRepo.On("FindAccountByID", ctx, "acc-a").Return(&account, nil).Once()

	got, err := suite.service.GetAccount(ctx, aliceID, "acc-a")

	suite.Require().NoError(err)
	suite.Equal("acc-a", got.AccountID)
}

func (suite *AccountServiceTestSuite) TestGetAccount_ForeignAccountIsNotFound() {
	ctx := context.Background()
	account := acct("acc-a", aliceID, "EUR", "3.50")
	suite.mockRepo.On("FindAccountByID", ctx, "acc-a").Return(&account, nil).Once()

	_, err := suite.service.GetAccount(ctx, bobID, "acc-a")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
