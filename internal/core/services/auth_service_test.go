package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/core/services"
	"github.com/SscSPs/wallet_ledger/internal/dto"
	"github.com/SscSPs/wallet_ledger/internal/platform/config"
	"github.com/SscSPs/wallet_ledger/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	tx           *fakeTx
	cfg          *config.Config
	mockTx       *MockTxManager
	mockUsers    *MockUserRepository
	mockAccounts *MockAccountRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.tx = &fakeTx{}
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "wallet-test",
		RegistrationBalances: []config.OpeningBalance{
			{Currency: "USD", Amount: dec("1000.00")},
			{Currency: "EUR", Amount: dec("500.00")},
		},
	}
	suite.mockTx = new(MockTxManager)
	suite.mockUsers = new(MockUserRepository)
	suite.mockAccounts = new(MockAccountRepository)
	suite.service = services.NewAuthService(suite.cfg, suite.mockTx, suite.mockUsers, suite.mockAccounts)
}

func (suite *AuthServiceTestSuite) TestRegister_CreatesUserAndOpeningAccounts() {
	suite.mockUsers.On("FindUserByEmail", suite.ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTx.On("Begin", suite.ctx).Return(suite.tx, nil).Once()
	suite.mockUsers.On("SaveUserInTx", suite.ctx, suite.tx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockAccounts.On("SaveAccountsInTx", suite.ctx, suite.tx, mock.Anything).Return(nil).Once()
	suite.mockTx.On("Commit", suite.ctx, suite.tx).Return(nil).Once()
	suite.mockTx.On("Rollback", suite.ctx, suite.tx).Return(nil).Once()

	user, accounts, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Email: " Alice@Example.com ", Password: "correct-horse"})

	suite.Require().NoError(err)
	suite.Equal("alice@example.com", user.Email)
	suite.NotEqual("correct-horse", user.PasswordHash)
	suite.True(utils.CheckPasswordHash("correct-horse", user.PasswordHash))
	suite.Require().Len(accounts, 2)
	suite.Equal("USD", accounts[0].Currency)
	suite.True(accounts[0].Balance.Equal(dec("1000.00")))
	suite.Equal("EUR", accounts[1].Currency)
	for _, acc := range accounts {
		suite.Equal(user.UserID, acc.UserID)
	}
	suite.mockTx.AssertExpectations(suite.T())
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	existing := &domain.User{UserID: aliceID, Email: "alice@example.com"}
	suite.mockUsers.On("FindUserByEmail", suite.ctx, "alice@example.com").Return(existing, nil).Once()

	_, _, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Email: "alice@example.com", Password: "correct-horse"})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockTx.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRegister_AccountInsertFailsRollsBack() {
	suite.mockUsers.On("FindUserByEmail", suite.ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTx.On("Begin", suite.ctx).Return(suite.tx, nil).Once()
	suite.mockUsers.On("SaveUserInTx", suite.ctx, suite.tx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockAccounts.On("SaveAccountsInTx", suite.ctx, suite.tx, mock.Anything).Return(errors.New("insert failed")).Once()
	suite.mockTx.On("Rollback", suite.ctx, suite.tx).Return(nil).Once()

	_, _, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Email: "alice@example.com", Password: "correct-horse"})

	suite.Error(err)
	suite.mockTx.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockTx.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	suite.mockUsers.On("FindUserByEmail", suite.ctx, "alice@example.com").
		Return(&domain.User{UserID: aliceID, Email: "alice@example.com", PasswordHash: hash}, nil).Once()

	resp, err := suite.service.Login(suite.ctx, dto.LoginRequest{Email: "ALICE@example.com", Password: "correct-horse"})

	suite.Require().NoError(err)
	suite.Equal("Bearer", resp.TokenType)
	claims, err := utils.ParseAndValidateJWT(resp.Token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(aliceID, claims.Subject)
	suite.Equal("wallet-test", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	suite.mockUsers.On("FindUserByEmail", suite.ctx, "alice@example.com").
		Return(&domain.User{UserID: aliceID, Email: "alice@example.com", PasswordHash: hash}, nil).Once()

	_, err = suite.service.Login(suite.ctx, dto.LoginRequest{Email: "alice@example.com", Password: "battery-staple"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	suite.mockUsers.On("FindUserByEmail", suite.ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(suite.ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever1"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
