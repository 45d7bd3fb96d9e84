package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account with its owner.
	GetAccountByID(ctx context.Context, accountID string) (*domain.AccountWithOwner, error)

	// GetAccountForOwner retrieves the account of the given user with the user's profile.
	GetAccountForOwner(ctx context.Context, ownerID string) (*domain.AccountWithOwner, error)

	// ListAccounts retrieves a page of accounts with their owners.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AccountWithOwner, error)
}

// AccountLifecycleSvc creates, (de)activates and removes accounts.
type AccountLifecycleSvc interface {
	// Provision creates the single account of an existing user with a zero balance.
	Provision(ctx context.Context, ownerID string, initialStatus domain.AccountStatus, actor string) (*domain.Account, error)

	// SetStatus changes the account status. Setting the current status again is a no-op.
	SetStatus(ctx context.Context, accountID string, status domain.AccountStatus, actor string) (*domain.Account, error)

	// Deprovision removes the account, its transactions and its owner.
	Deprovision(ctx context.Context, accountID string, actor string) error

	// RegisterCustomer creates a user and its account together.
	RegisterCustomer(ctx context.Context, customer domain.NewCustomer, initialStatus domain.AccountStatus, actor string) (*domain.AccountWithOwner, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountLifecycleSvc
}
