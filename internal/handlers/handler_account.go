package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	userService    portssvc.UserSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, us portssvc.UserSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		userService:    us,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, userService portssvc.UserSvcFacade) {
	h := newAccountHandler(accountService, userService)
	admin := middleware.RequireRole(domain.RoleAdmin)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me", h.getMyAccount)
		accounts.PUT("/me", h.updateMyProfile)

		accounts.POST("", admin, h.createCustomer)
		accounts.GET("", admin, h.listAccounts)
		accounts.GET("/:accountID", admin, h.getAccount)
		accounts.DELETE("/:accountID", admin, h.deprovisionAccount)
		accounts.PATCH("/:accountID/activate", admin, h.activateAccount)
		accounts.PATCH("/:accountID/deactivate", admin, h.deactivateAccount)
	}
}

// getMyAccount godoc
// @Summary Get the caller's account
// @Description Returns the caller's own account together with their profile
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountWithOwnerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Caller has no account"
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getMyAccount(c *gin.Context) {
	userID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountForOwner(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountWithOwnerResponse(account))
}

// updateMyProfile godoc
// @Summary Update the caller's profile
// @Description Updates name, address and profile picture of the caller
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   profile body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/me [put]
func (h *accountHandler) updateMyProfile(c *gin.Context) {
	userID, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req.ToProfileUpdate(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// createCustomer godoc
// @Summary Create a customer
// @Description Creates a user and an ACTIVE account for them in one step. Admin only.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   customer body dto.CreateCustomerRequest true "Customer profile"
// @Success 201 {object} dto.AccountWithOwnerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	account, err := h.accountService.RegisterCustomer(c.Request.Context(), req.ToNewCustomer(), domain.AccountActive, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to create customer")
		return
	}

	logger.Info("Customer created", slog.String("account_id", account.AccountID), slog.String("owner_id", account.OwnerID))
	c.JSON(http.StatusCreated, dto.ToAccountWithOwnerResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts with their owners, newest first. Admin only.
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts, params))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves an account with its owner. Admin only.
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountWithOwnerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountWithOwnerResponse(account))
}

// activateAccount godoc
// @Summary Activate an account
// @Description Sets the account status to ACTIVE. Activating an active account is a no-op. Admin only.
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/activate [patch]
func (h *accountHandler) activateAccount(c *gin.Context) {
	h.setStatus(c, domain.AccountActive)
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Sets the account status to INACTIVE; inactive accounts reject credits and debits. Admin only.
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/deactivate [patch]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	h.setStatus(c, domain.AccountInactive)
}

func (h *accountHandler) setStatus(c *gin.Context, status domain.AccountStatus) {
	actorID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	account, err := h.accountService.SetStatus(c.Request.Context(), c.Param("accountID"), status, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to update account status")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deprovisionAccount godoc
// @Summary Delete an account
// @Description Permanently removes the account, its transactions and its owner. Admin only.
// @Tags accounts
// @Param   accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deprovisionAccount(c *gin.Context) {
	actorID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	if err := h.accountService.Deprovision(c.Request.Context(), c.Param("accountID"), actorID); err != nil {
		respondWithError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}
