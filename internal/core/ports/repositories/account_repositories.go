package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByOwnerID retrieves the account owned by the given user.
	FindAccountByOwnerID(ctx context.Context, ownerID string) (*domain.Account, error)

	// FindAccountWithOwner retrieves an account joined with its owner's profile.
	FindAccountWithOwner(ctx context.Context, accountID string) (*domain.AccountWithOwner, error)

	// ListAccountsWithOwners retrieves a page of accounts with owners, newest first.
	ListAccountsWithOwners(ctx context.Context, limit int, offset int) ([]domain.AccountWithOwner, error)
}

// AccountWriter defines write operations for account data. None of them touch the balance.
type AccountWriter interface {
	// SaveAccount persists a new account. A taken account number yields
	// apperrors.ErrDuplicateAccountNumber, an owner that already has an account apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveUserWithAccount persists a new user and its account in one atomic unit.
	SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account) error

	// UpdateAccountStatus sets the status and returns the stored account. Audit fields only
	// change when the status actually changes.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) (*domain.Account, error)

	// DeleteAccountCascade removes the account's transactions, the account and its owner in one atomic unit.
	DeleteAccountCascade(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
