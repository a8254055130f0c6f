package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{"lock timeout", apperrors.ErrLockTimeout, apperrors.KindRetryable},
		{"wrapped deadlock", fmt.Errorf("lock accounts: %w", apperrors.ErrConcurrencyConflict), apperrors.KindRetryable},
		{"missing system account", apperrors.ErrSystemAccountMissing, apperrors.KindMisconfiguration},
		{"missing rate", fmt.Errorf("%w: USD->JPY", apperrors.ErrRateNotFound), apperrors.KindMisconfiguration},
		{"insufficient funds", apperrors.ErrInsufficientFunds, apperrors.KindValidation},
		{"same currency", apperrors.ErrSameCurrency, apperrors.KindValidation},
		{"not found", apperrors.NewNotFoundError("account abc"), apperrors.KindNotFound},
		{"duplicate", apperrors.ErrDuplicate, apperrors.KindConflict},
		{"unknown", errors.New("boom"), apperrors.KindInternal},
		{"nil", nil, apperrors.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.KindOf(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, apperrors.IsRetryable(fmt.Errorf("x: %w", apperrors.ErrLockTimeout)))
	assert.False(t, apperrors.IsRetryable(apperrors.ErrInsufficientFunds))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.NewValidationError("bad page"), http.StatusBadRequest},
		{apperrors.ErrCurrencyMismatch, http.StatusUnprocessableEntity},
		{apperrors.ErrInsufficientLiquidity, http.StatusUnprocessableEntity},
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrLockTimeout, http.StatusConflict},
		{apperrors.ErrDuplicate, http.StatusConflict},
		{apperrors.ErrRateNotFound, http.StatusServiceUnavailable},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
		{apperrors.NewAppError(http.StatusTeapot, "teapot", apperrors.ErrNotFound), http.StatusTeapot},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, apperrors.HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := apperrors.NewAppError(http.StatusNotFound, "account missing", apperrors.ErrNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "account missing: resource not found", err.Error())
}
