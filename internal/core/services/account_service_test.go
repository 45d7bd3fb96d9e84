package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/core/services"
	"github.com/SscSPs/bank_ledger_app/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock based tests ---

type AccountServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	accountRepo *MockAccountRepository
	userRepo    *MockUserRepository
	numbers     *sequenceNumbers
	service     portssvc.AccountSvcFacade
	now         time.Time
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.accountRepo = new(MockAccountRepository)
	suite.userRepo = new(MockUserRepository)
	suite.numbers = &sequenceNumbers{values: []string{"ACCT-A", "ACCT-B", "ACCT-C"}}
	suite.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewAccountService(suite.accountRepo, suite.userRepo,
		services.WithAccountNumberSource(suite.numbers),
		services.WithProvisionMaxAttempts(3),
		services.WithAccountClock(func() time.Time { return suite.now }),
	)
}

func (suite *AccountServiceTestSuite) TestProvision_Success() {
	ownerID := uuid.NewString()
	suite.userRepo.On("FindUserByID", suite.ctx, ownerID).Return(&domain.User{UserID: ownerID}, nil).Once()
	suite.accountRepo.On("FindAccountByOwnerID", suite.ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.accountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.Provision(suite.ctx, ownerID, domain.AccountInactive, "admin")

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(ownerID, account.OwnerID)
	suite.Equal("ACCT-A", account.AccountNumber)
	suite.Equal(domain.Money(0), account.Balance)
	suite.Equal(domain.AccountInactive, account.Status)
	suite.Equal("admin", account.CreatedBy)
	suite.Equal(suite.now, account.CreatedAt)
	suite.accountRepo.AssertExpectations(suite.T())
	suite.userRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestProvision_RetriesNumberCollision() {
	ownerID := uuid.NewString()
	suite.userRepo.On("FindUserByID", suite.ctx, ownerID).Return(&domain.User{UserID: ownerID}, nil).Once()
	suite.accountRepo.On("FindAccountByOwnerID", suite.ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.accountRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool { return a.AccountNumber == "ACCT-A" })).
		Return(apperrors.ErrDuplicateAccountNumber).Once()
	suite.accountRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool { return a.AccountNumber == "ACCT-B" })).
		Return(nil).Once()

	account, err := suite.service.Provision(suite.ctx, ownerID, domain.AccountActive, "admin")

	suite.Require().NoError(err)
	suite.Equal("ACCT-B", account.AccountNumber)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestProvision_CollisionRetriesExhausted() {
	ownerID := uuid.NewString()
	suite.userRepo.On("FindUserByID", suite.ctx, ownerID).Return(&domain.User{UserID: ownerID}, nil).Once()
	suite.accountRepo.On("FindAccountByOwnerID", suite.ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.accountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicateAccountNumber).Times(3)

	account, err := suite.service.Provision(suite.ctx, ownerID, domain.AccountActive, "admin")

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.NotErrorIs(err, apperrors.ErrDuplicate)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestProvision_OwnerNotFound() {
	suite.userRepo.On("FindUserByID", suite.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Provision(suite.ctx, "ghost", domain.AccountActive, "admin")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.accountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestProvision_OwnerAlreadyHasAccount() {
	ownerID := uuid.NewString()
	suite.userRepo.On("FindUserByID", suite.ctx, ownerID).Return(&domain.User{UserID: ownerID}, nil).Once()
	suite.accountRepo.On("FindAccountByOwnerID", suite.ctx, ownerID).
		Return(&domain.Account{AccountID: "a1", OwnerID: ownerID, AccountNumber: "ACCT-X"}, nil).Once()

	_, err := suite.service.Provision(suite.ctx, ownerID, domain.AccountActive, "admin")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.accountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestProvision_InvalidStatus() {
	_, err := suite.service.Provision(suite.ctx, "u1", domain.AccountStatus("FROZEN"), "admin")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestSetStatus_PassesClockAndActor() {
	expected := &domain.Account{AccountID: "a1", Status: domain.AccountActive}
	suite.accountRepo.On("UpdateAccountStatus", suite.ctx, "a1", domain.AccountActive, "admin", suite.now).Return(expected, nil).Once()

	account, err := suite.service.SetStatus(suite.ctx, "a1", domain.AccountActive, "admin")

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeprovision_StorageError() {
	storageErr := apperrors.NewStorageError("failed to delete account", assert.AnError)
	suite.accountRepo.On("DeleteAccountCascade", suite.ctx, "a1").Return(storageErr).Once()

	err := suite.service.Deprovision(suite.ctx, "a1", "admin")

	suite.ErrorIs(err, apperrors.ErrStorage)
}

func (suite *AccountServiceTestSuite) TestListAccounts_ClampsPaging() {
	suite.accountRepo.On("ListAccountsWithOwners", suite.ctx, 100, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(suite.ctx, 1000, -4)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRegisterCustomer_RequiresNameAndEmail() {
	_, err := suite.service.RegisterCustomer(suite.ctx, domain.NewCustomer{Name: "  ", Email: "a@example.com"}, domain.AccountInactive, "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestRegisterCustomer_SelfRegistrationAuthorsItself() {
	suite.accountRepo.On("SaveUserWithAccount", suite.ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.RegisterCustomer(suite.ctx, domain.NewCustomer{Name: " Ada ", Email: " Ada@Example.com "}, domain.AccountInactive, "")

	suite.Require().NoError(err)
	suite.Equal("Ada", created.Owner.Name)
	suite.Equal("ada@example.com", created.Owner.Email)
	suite.Equal(domain.RoleUser, created.Owner.Role)
	suite.Equal(created.Owner.UserID, created.Owner.CreatedBy)
	suite.Equal(created.Owner.UserID, created.Account.CreatedBy)
	suite.Equal(created.Owner.UserID, created.Account.OwnerID)
	suite.Equal(domain.AccountInactive, created.Account.Status)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

// --- Memory store backed tests ---

func newMemoryAccountService(store *memory.Store, options ...services.AccountServiceOption) portssvc.AccountSvcFacade {
	return services.NewAccountService(store, store, options...)
}

func TestProvision_ConcurrentProvisionsGetDistinctNumbers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMemoryAccountService(store)

	const n = 64
	owners := make([]string, n)
	for i := range owners {
		owners[i] = uuid.NewString()
		require.NoError(t, store.SaveUser(ctx, domain.User{UserID: owners[i], Name: "Owner", Email: fmt.Sprintf("owner%d@example.com", i)}))
	}

	var wg sync.WaitGroup
	numbers := make([]string, n)
	for i := range owners {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			account, err := svc.Provision(ctx, owners[i], domain.AccountActive, "admin")
			if assert.NoError(t, err) {
				numbers[i] = account.AccountNumber
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, number := range numbers {
		assert.NotEmpty(t, number)
		assert.False(t, seen[number], "duplicate account number %s", number)
		seen[number] = true
	}
}

func TestProvision_ConcurrentSameOwnerCreatesOneAccount(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newMemoryAccountService(store)
	ownerID := uuid.NewString()
	require.NoError(t, store.SaveUser(ctx, domain.User{UserID: ownerID, Email: "solo@example.com"}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes, duplicates int
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Provision(ctx, ownerID, domain.AccountActive, "admin")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, apperrors.ErrDuplicate):
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 9, duplicates)
}

func TestProvision_CollidingGeneratorRetriesAgainstStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	first := uuid.NewString()
	second := uuid.NewString()
	require.NoError(t, store.SaveUser(ctx, domain.User{UserID: first, Email: "first@example.com"}))
	require.NoError(t, store.SaveUser(ctx, domain.User{UserID: second, Email: "second@example.com"}))

	numbers := &sequenceNumbers{values: []string{"ACCT-SAME", "ACCT-SAME", "ACCT-OTHER"}}
	svc := newMemoryAccountService(store, services.WithAccountNumberSource(numbers))

	a, err := svc.Provision(ctx, first, domain.AccountActive, "admin")
	require.NoError(t, err)
	b, err := svc.Provision(ctx, second, domain.AccountActive, "admin")
	require.NoError(t, err)

	assert.Equal(t, "ACCT-SAME", a.AccountNumber)
	assert.Equal(t, "ACCT-OTHER", b.AccountNumber)
}

func TestSetStatus_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := newMemoryAccountService(store, services.WithAccountClock(func() time.Time { return clock }))

	created, err := svc.RegisterCustomer(ctx, domain.NewCustomer{Name: "Ada", Email: "ada@example.com"}, domain.AccountInactive, "")
	require.NoError(t, err)

	first, err := svc.SetStatus(ctx, created.Account.AccountID, domain.AccountActive, "admin")
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	second, err := svc.SetStatus(ctx, created.Account.AccountID, domain.AccountActive, "admin")
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	assert.Equal(t, domain.AccountActive, second.Status)
}

func TestDeprovision_RemovesAccountTransactionsAndOwner(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	accounts := newMemoryAccountService(store)
	ledger := services.NewLedgerService(store, store)

	created, err := accounts.RegisterCustomer(ctx, domain.NewCustomer{Name: "Ada", Email: "ada@example.com"}, domain.AccountActive, "admin")
	require.NoError(t, err)
	_, err = ledger.Credit(ctx, domain.LedgerRequest{AccountID: created.Account.AccountID, Amount: 100})
	require.NoError(t, err)

	require.NoError(t, accounts.Deprovision(ctx, created.Account.AccountID, "admin"))

	_, err = accounts.GetAccountByID(ctx, created.Account.AccountID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = store.FindUserByID(ctx, created.Owner.UserID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = ledger.Statement(ctx, created.Account.AccountID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = ledger.Credit(ctx, domain.LedgerRequest{AccountID: created.Account.AccountID, Amount: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRegisterCustomer_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryAccountService(memory.NewStore())

	_, err := svc.RegisterCustomer(ctx, domain.NewCustomer{Name: "Ada", Email: "ada@example.com"}, domain.AccountInactive, "")
	require.NoError(t, err)
	_, err = svc.RegisterCustomer(ctx, domain.NewCustomer{Name: "Ada Two", Email: "ADA@example.com"}, domain.AccountInactive, "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestGetAccountForOwner(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryAccountService(memory.NewStore())

	created, err := svc.RegisterCustomer(ctx, domain.NewCustomer{Name: "Ada", Email: "ada@example.com", Address: "1 Loop Rd"}, domain.AccountActive, "admin")
	require.NoError(t, err)

	found, err := svc.GetAccountForOwner(ctx, created.Owner.UserID)
	require.NoError(t, err)
	assert.Equal(t, created.Account.AccountNumber, found.AccountNumber)
	assert.Equal(t, "1 Loop Rd", found.Owner.Address)
}
