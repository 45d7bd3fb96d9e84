package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrAccountInactive),
		errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrIdempotencyConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the status and message for err. Storage and unexpected failures
// are logged and answered with fallbackMsg so driver details never reach the client.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)

	switch status {
	case http.StatusServiceUnavailable:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.Header("Retry-After", "1")
		c.JSON(status, ErrorResponse{Error: fallbackMsg + ": storage temporarily unavailable, please retry"})
	case http.StatusInternalServerError:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallbackMsg})
	default:
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: err.Error()})
	}
}

// respondWithBindError answers a failed ShouldBind*. A failed amount rule is reported as an invalid amount.
func respondWithBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == decimalAmountTag {
				respondWithError(c, apperrors.ErrInvalidAmount, "")
				return
			}
		}
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// callerOrAbort returns the authenticated caller, answering 401 when there is none.
func callerOrAbort(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
