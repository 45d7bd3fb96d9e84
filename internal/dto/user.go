package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// RegisterRequest is the public self-registration payload.
type RegisterRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Mobile  string `json:"mobile" binding:"omitempty,max=32"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

// ToNewCustomer converts the request to the domain form.
func (r RegisterRequest) ToNewCustomer() domain.NewCustomer {
	return domain.NewCustomer{Name: r.Name, Email: r.Email, Mobile: r.Mobile, Address: r.Address}
}

// UpdateProfileRequest defines what a customer may change about themselves.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProfileRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address    *string `json:"address" binding:"omitempty,max=500"`
	ProfilePic *string `json:"profilePic" binding:"omitempty,url"`
}

// ToProfileUpdate converts the request to the domain form.
func (r UpdateProfileRequest) ToProfileUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{Name: r.Name, Address: r.Address, ProfilePic: r.ProfilePic}
}

// UpdateUserRequest defines what an admin may change about a user.
type UpdateUserRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Mobile  *string `json:"mobile" binding:"omitempty,max=32"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// ToProfileUpdate converts the request to the domain form.
func (r UpdateUserRequest) ToProfileUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{Name: r.Name, Mobile: r.Mobile, Address: r.Address}
}

type UserResponse struct {
	UserID        string    `json:"userID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Mobile        string    `json:"mobile,omitempty"`
	Address       string    `json:"address,omitempty"`
	ProfilePic    string    `json:"profilePic,omitempty"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		Mobile:        user.Mobile,
		Address:       user.Address,
		ProfilePic:    user.ProfilePic,
		Role:          string(user.Role),
		CreatedAt:     user.CreatedAt,
		LastUpdatedAt: user.LastUpdatedAt,
	}
}
