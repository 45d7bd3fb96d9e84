package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByOwnerID(ctx context.Context, ownerID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountWithOwner(ctx context.Context, accountID string) (*domain.AccountWithOwner, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountWithOwner), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsWithOwners(ctx context.Context, limit int, offset int) ([]domain.AccountWithOwner, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountWithOwner), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account) error {
	args := m.Called(ctx, user, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) (*domain.Account, error) {
	args := m.Called(ctx, accountID, status, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccountCascade(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, userID string, update domain.ProfileUpdate, updatedBy string, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, userID, update, updatedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockLedgerRepository is a mock type for the LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) WithinAccountLock(ctx context.Context, accountID string, fn func(ctx context.Context, unit portsrepo.LedgerUnit) error) error {
	args := m.Called(ctx, accountID, fn)
	return args.Error(0)
}

func (m *MockLedgerRepository) ReadStatement(ctx context.Context, accountID string) (*domain.Account, []domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).([]domain.Transaction), args.Error(2)
}

// MockAuditLogRepository is a mock type for the AuditLogRepository interface
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// sequenceNumbers hands out account numbers from a fixed list, cycling when exhausted.
type sequenceNumbers struct {
	mu     sync.Mutex
	values []string
	next   int
}

func (s *sequenceNumbers) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v, nil
}
