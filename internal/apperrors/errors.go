package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure inside the service.
var ErrInternal = errors.New("internal error")

// Ledger engine errors.
var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrCurrencyMismatch      = errors.New("currency mismatch")
	ErrSameCurrency          = errors.New("exchange requires different currencies")
	ErrCrossOwnerExchange    = errors.New("exchange accounts belong to different owners")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientLiquidity = errors.New("insufficient system liquidity")
	ErrRateNotFound          = errors.New("exchange rate not found")
	ErrSystemAccountMissing  = errors.New("system account not configured")
	ErrLockTimeout           = errors.New("lock wait timeout")
	ErrConcurrencyConflict   = errors.New("concurrency conflict")
)

// Kind groups errors by how a caller should react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuth
	KindRetryable
	KindMisconfiguration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindRetryable:
		return "retryable"
	case KindMisconfiguration:
		return "misconfiguration"
	default:
		return "internal"
	}
}

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrLockTimeout, KindRetryable},
	{ErrConcurrencyConflict, KindRetryable},
	{ErrSystemAccountMissing, KindMisconfiguration},
	{ErrRateNotFound, KindMisconfiguration},
	{ErrNotFound, KindNotFound},
	{ErrDuplicate, KindConflict},
	{ErrUnauthorized, KindAuth},
	{ErrForbidden, KindAuth},
	{ErrInvalidArgument, KindValidation},
	{ErrValidation, KindValidation},
	{ErrCurrencyMismatch, KindValidation},
	{ErrSameCurrency, KindValidation},
	{ErrCrossOwnerExchange, KindValidation},
	{ErrInsufficientFunds, KindValidation},
	{ErrInsufficientLiquidity, KindValidation},
}

// KindOf classifies err by the first known sentinel it wraps.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// IsRetryable reports whether the operation may succeed if the caller tries again.
func IsRetryable(err error) bool {
	return KindOf(err) == KindRetryable
}

// HTTPStatus maps an error to the status code handlers should answer with.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	}
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindRetryable:
		return http.StatusConflict
	case KindMisconfiguration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AppError carries an explicit HTTP status and a client-safe message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a resource description.
func NewNotFoundError(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

// NewValidationError wraps ErrInvalidArgument with a message.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, message)
}
