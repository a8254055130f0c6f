package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/dto"
	"github.com/SscSPs/wallet_ledger/internal/platform/config"
	"github.com/SscSPs/wallet_ledger/internal/utils"
)

// authService registers wallet holders and issues access tokens.
type authService struct {
	BaseService
	cfg         *config.Config
	txManager   portsrepo.TransactionManager
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountWriter
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, txManager portsrepo.TransactionManager, userRepo portsrepo.UserRepositoryFacade, accountRepo portsrepo.AccountWriter) portssvc.AuthSvcFacade {
	return &authService{
		cfg:         cfg,
		txManager:   txManager,
		userRepo:    userRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates the user and one account per configured opening balance in one transaction.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, []domain.Account, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, nil, apperrors.NewValidationError("email and password are required")
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing user")
		return nil, nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	accounts := make([]domain.Account, 0, len(s.cfg.RegistrationBalances))
	for _, opening := range s.cfg.RegistrationBalances {
		accounts = append(accounts, domain.Account{
			AccountID: uuid.NewString(),
			UserID:    user.UserID,
			Currency:  opening.Currency,
			Balance:   opening.Amount,
			CreatedAt: now,
		})
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx pgx.Tx) {
		// No-op once committed.
		_ = s.txManager.Rollback(ctx, tx)
	}(tx)

	if err := s.userRepo.SaveUserInTx(ctx, tx, user); err != nil {
		return nil, nil, err
	}
	if len(accounts) > 0 {
		if err := s.accountRepo.SaveAccountsInTx(ctx, tx, accounts); err != nil {
			return nil, nil, err
		}
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID), slog.Int("accounts", len(accounts)))
	return &user, accounts, nil
}

// Login verifies credentials and issues an access token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.GetLogger(ctx).WarnContext(ctx, "Login with wrong password", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}

// GetUser returns the user with the given ID.
func (s *authService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}
