package handlers_test

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Credit(ctx context.Context, req domain.LedgerRequest) (*domain.LedgerResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerResult), args.Error(1)
}

func (m *MockLedgerService) Debit(ctx context.Context, req domain.LedgerRequest) (*domain.LedgerResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerResult), args.Error(1)
}

func (m *MockLedgerService) Statement(ctx context.Context, accountID string) (*domain.Statement, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockLedgerService) StatementForOwner(ctx context.Context, ownerID string) (*domain.Statement, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.AccountWithOwner, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountWithOwner), args.Error(1)
}

func (m *MockAccountService) GetAccountForOwner(ctx context.Context, ownerID string) (*domain.AccountWithOwner, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountWithOwner), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AccountWithOwner, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountWithOwner), args.Error(1)
}

func (m *MockAccountService) Provision(ctx context.Context, ownerID string, initialStatus domain.AccountStatus, actor string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, initialStatus, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) SetStatus(ctx context.Context, accountID string, status domain.AccountStatus, actor string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, status, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Deprovision(ctx context.Context, accountID string, actor string) error {
	args := m.Called(ctx, accountID, actor)
	return args.Error(0)
}

func (m *MockAccountService) RegisterCustomer(ctx context.Context, customer domain.NewCustomer, initialStatus domain.AccountStatus, actor string) (*domain.AccountWithOwner, error) {
	args := m.Called(ctx, customer, initialStatus, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountWithOwner), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, actor string) (*domain.User, error) {
	args := m.Called(ctx, userID, update, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

var _ portssvc.AuditSvc = (*MockAuditService)(nil)
