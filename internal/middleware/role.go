package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireRole rejects callers whose role is not one of roles. It must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !slices.Contains(roles, role) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role not permitted", slog.String("role", string(role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
