package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/SscSPs/wallet_ledger/internal/dto"
)

// AuthSvcFacade defines registration, login and identity lookup.
type AuthSvcFacade interface {
	// Register creates a user and its initial wallets atomically.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, []domain.Account, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// GetUser returns the user with the given ID.
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}
