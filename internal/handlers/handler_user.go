package handlers

import (
	"net/http"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles admin HTTP requests about users.
type userHandler struct {
	userService    portssvc.UserSvcFacade
	accountService portssvc.AccountSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, as portssvc.AccountSvcFacade) *userHandler {
	return &userHandler{userService: us, accountService: as}
}

// registerUserRoutes registers all user-related routes. They are admin only.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, accountService portssvc.AccountSvcFacade) {
	h := newUserHandler(userService, accountService)

	users := rg.Group("/users", middleware.RequireRole(domain.RoleAdmin))
	{
		users.GET("/:userID", h.getUser)
		users.PUT("/:userID", h.updateUser)
		users.POST("/:userID/account", h.provisionAccount)
	}
}

// getUser godoc
// @Summary Get a user
// @Description Retrieves a user profile by ID. Admin only.
// @Tags users
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates name, mobile and address of a user. Admin only.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	actorID, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), c.Param("userID"), req.ToProfileUpdate(), actorID)
	if err != nil {
		respondWithError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// provisionAccount godoc
// @Summary Open an account for an existing user
// @Description Creates the single account of a user with a zero balance. Admin only.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   account body dto.ProvisionAccountRequest false "Initial status, ACTIVE by default"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 409 {object} ErrorResponse "User already has an account"
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID}/account [post]
func (h *userHandler) provisionAccount(c *gin.Context) {
	actorID, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.ProvisionAccountRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithBindError(c, err)
			return
		}
	}

	account, err := h.accountService.Provision(c.Request.Context(), c.Param("userID"), req.InitialStatus(), actorID)
	if err != nil {
		respondWithError(c, err, "Failed to provision account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}
