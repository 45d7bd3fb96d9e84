package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is used for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	roleKey      = contextKey("role")
)

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
		return userID, true
	}
	return "", false
}

// GetRoleFromContext retrieves the authenticated user's role from the Gin context.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	role, ok := c.Request.Context().Value(roleKey).(domain.Role)
	return role, ok
}

// GetCallerFromContext returns the authenticated identity, if any.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Caller{}, false
	}
	role, _ := GetRoleFromContext(c)
	return domain.Caller{UserID: userID, Role: role}, true
}
