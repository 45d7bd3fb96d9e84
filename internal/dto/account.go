package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a user together with its account.
type CreateCustomerRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Email      string `json:"email" binding:"required,email"`
	Mobile     string `json:"mobile" binding:"omitempty,max=32"`
	Address    string `json:"address" binding:"omitempty,max=500"`
	ProfilePic string `json:"profilePic" binding:"omitempty,url"`
}

// ToNewCustomer converts the request to the domain form.
func (r CreateCustomerRequest) ToNewCustomer() domain.NewCustomer {
	return domain.NewCustomer{
		Name:       r.Name,
		Email:      r.Email,
		Mobile:     r.Mobile,
		Address:    r.Address,
		ProfilePic: r.ProfilePic,
	}
}

// ProvisionAccountRequest optionally chooses the initial status of a provisioned account.
type ProvisionAccountRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// InitialStatus returns the requested status, ACTIVE when none was given.
func (r ProvisionAccountRequest) InitialStatus() domain.AccountStatus {
	if r.Status == "" {
		return domain.AccountActive
	}
	return domain.AccountStatus(strings.ToUpper(r.Status))
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string    `json:"accountID"`
	OwnerID       string    `json:"ownerID"`
	AccountNumber string    `json:"accountNumber"`
	Balance       string    `json:"balance" example:"125.50"`
	Status        string    `json:"status" example:"ACTIVE"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// AccountWithOwnerResponse is an account together with its owner's profile.
type AccountWithOwnerResponse struct {
	AccountResponse
	Owner UserResponse `json:"owner"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		OwnerID:       acc.OwnerID,
		AccountNumber: acc.AccountNumber,
		Balance:       acc.Balance.String(),
		Status:        string(acc.Status),
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToAccountWithOwnerResponse converts a domain.AccountWithOwner to its DTO.
func ToAccountWithOwnerResponse(acc *domain.AccountWithOwner) AccountWithOwnerResponse {
	return AccountWithOwnerResponse{
		AccountResponse: ToAccountResponse(&acc.Account),
		Owner:           ToUserResponse(&acc.Owner),
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountWithOwnerResponse `json:"accounts"`
	Limit    int                        `json:"limit"`
	Offset   int                        `json:"offset"`
}

// ToListAccountsResponse converts a page of accounts to its DTO.
func ToListAccountsResponse(accounts []domain.AccountWithOwner, params ListAccountsParams) ListAccountsResponse {
	res := make([]AccountWithOwnerResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountWithOwnerResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res, Limit: params.Limit, Offset: params.Offset}
}
