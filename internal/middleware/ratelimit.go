package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimit throttles requests per client IP. scope namespaces the counters so the
// API and registration limits can share one store without sharing budgets.
func RateLimit(l *limiter.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		key := scope + ":" + c.ClientIP()

		quota, err := l.Get(c.Request.Context(), key)
		if err != nil {
			// A store failure lets the request through.
			logger.Error("Rate limit check failed, allowing request", slog.String("key", key), slog.String("error", err.Error()))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(quota.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(quota.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(quota.Reset, 10))

		if quota.Reached {
			retryAfter := max(quota.Reset-time.Now().Unix(), 1)
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			logger.Warn("Rate limit exceeded", slog.String("key", key), slog.Int64("limit", quota.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
