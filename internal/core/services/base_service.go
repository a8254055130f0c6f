package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/SscSPs/wallet_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.ErrorContext(ctx, msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).InfoContext(ctx, msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).DebugContext(ctx, msg, keyvals...)
}

// AuthorizeOwner checks that requestedBy owns acc. An empty requestedBy means a trusted internal caller.
func (s *BaseService) AuthorizeOwner(ctx context.Context, requestedBy string, acc domain.Account) error {
	if requestedBy == "" || requestedBy == acc.UserID {
		return nil
	}
	s.GetLogger(ctx).WarnContext(ctx, "Caller does not own account",
		slog.String("requested_by", requestedBy),
		slog.String("account_id", acc.AccountID))
	return fmt.Errorf("%w: account %s does not belong to caller", apperrors.ErrForbidden, acc.AccountID)
}
