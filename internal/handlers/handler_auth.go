package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles public registration. Tokens are issued by the identity provider.
type AuthHandler struct {
	accountService portssvc.AccountSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AccountSvcFacade) *AuthHandler {
	return &AuthHandler{accountService: as}
}

// registerAuthRoutes sets up the public authentication routes, rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, accountService portssvc.AccountSvcFacade, auditWriter *middleware.AuditWriter, authLimiter *limiter.Limiter) {
	h := NewAuthHandler(accountService)

	auth := r.Group("/api/v1/auth")
	if authLimiter != nil {
		auth.Use(middleware.RateLimit(authLimiter, "auth"))
	}
	auth.Use(middleware.AuditMiddleware(auditWriter))
	auth.POST("/register", h.Register)
}

// Register godoc
// @Summary Register as a customer
// @Description Creates a user with role USER and an INACTIVE account. An admin activates it later.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Customer profile"
// @Success 201 {object} dto.AccountWithOwnerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 429 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	account, err := h.accountService.RegisterCustomer(c.Request.Context(), req.ToNewCustomer(), domain.AccountInactive, "")
	if err != nil {
		respondWithError(c, err, "Failed to register user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Customer registered",
		slog.String("user_id", account.OwnerID),
		slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountWithOwnerResponse(account))
}
