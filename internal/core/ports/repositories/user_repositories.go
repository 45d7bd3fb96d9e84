package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. A taken email yields apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUserProfile applies the non-nil fields of update and returns the stored user.
	UpdateUserProfile(ctx context.Context, userID string, update domain.ProfileUpdate, updatedBy string, now time.Time) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
