package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// UserSvcFacade defines user profile operations
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, actor string) (*domain.User, error)
}

// AuditSvc records API calls and client-side log entries.
type AuditSvc interface {
	Record(ctx context.Context, entry domain.AuditLog) error
}
