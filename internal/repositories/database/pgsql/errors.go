package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the ledger reacts to.
const (
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
	pgForeignKeyViolation  = "23503"
	pgLockNotAvailable     = "55P03"
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
	pgInvalidTextRep       = "22P02"
	pgNumericOutOfRange    = "22003"
)

// mapPgError translates driver errors into the apperrors taxonomy, keeping the cause in the chain.
func mapPgError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, op)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable:
			return fmt.Errorf("%w: %s: %w", apperrors.ErrLockTimeout, op, err)
		case pgDeadlockDetected, pgSerializationFailure:
			return fmt.Errorf("%w: %s: %w", apperrors.ErrConcurrencyConflict, op, err)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s: %w", apperrors.ErrDuplicate, op, err)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s: %w", apperrors.ErrInsufficientFunds, op, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s: %w", apperrors.ErrNotFound, op, err)
		case pgInvalidTextRep, pgNumericOutOfRange:
			return fmt.Errorf("%w: %s: %w", apperrors.ErrInvalidArgument, op, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
