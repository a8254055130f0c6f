package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

// respondWithError maps err to a status code and writes it. Internal failures hide their cause.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	status := apperrors.HTTPStatus(err)
	kind := apperrors.KindOf(err)

	resp := ErrorResponse{
		Error:     err.Error(),
		Code:      kind.String(),
		Retryable: apperrors.IsRetryable(err),
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		resp.Error = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()), slog.Int("status", status))
		if status == http.StatusInternalServerError {
			resp.Error = msg
		}
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, resp)
}

// respondWithBindError answers a request whose body or query failed to bind.
func respondWithBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	msg := "Invalid request format: " + err.Error()
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msg = "Invalid field " + verrs[0].Field() + ": failed on '" + verrs[0].Tag() + "'"
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: msg,
		Code:  apperrors.KindValidation.String(),
	})
}

func respondUnauthorized(c *gin.Context, logger *slog.Logger) {
	logger.Error("User ID not found in context")
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Code: apperrors.KindAuth.String()})
}
