package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const apiRoutePrefix = "/api/v1/"

// PosthogMiddleware sends one analytics event per successful authenticated API call.
// Events are named after the route template, so ids in the URL never become event names.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		eventName, ok := routeEventName(c.FullPath())
		if !ok {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if role, ok := GetRoleFromContext(c); ok {
			props["role"] = string(role)
		}
		if accountID := c.Param("accountID"); accountID != "" {
			props["account_id"] = accountID
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// routeEventName turns "/api/v1/accounts/:accountID/activate" into "accounts_activate".
// Only API routes are tracked.
func routeEventName(route string) (string, bool) {
	if !strings.HasPrefix(route, apiRoutePrefix) {
		return "", false
	}
	parts := strings.Split(strings.TrimPrefix(route, apiRoutePrefix), "/")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && !strings.HasPrefix(p, ":") && !strings.HasPrefix(p, "*") {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, "_"), true
}

// PosthogEvent sends a custom event for the authenticated caller.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}
	if properties == nil {
		properties = make(map[string]any, 1)
	}
	properties["route"] = c.FullPath()
	posthogClient.Enqueue(userID, eventName, properties)
}
