package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/utils/generator"
	"github.com/google/uuid"
)

const (
	defaultProvisionAttempts = 5
	defaultListLimit         = 20
	maxListLimit             = 100
)

// AccountNumberSource produces candidate account numbers. Uniqueness is enforced by the store.
type AccountNumberSource interface {
	Generate() (string, error)
}

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserReader
	numbers     AccountNumberSource
	maxAttempts int
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountNumberSource replaces the default ULID account number generator.
func WithAccountNumberSource(src AccountNumberSource) AccountServiceOption {
	return func(s *accountService) {
		s.numbers = src
	}
}

// WithProvisionMaxAttempts bounds the retries on account number collisions.
func WithProvisionMaxAttempts(n int) AccountServiceOption {
	return func(s *accountService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithAccountClock overrides the clock used for audit timestamps.
func WithAccountClock(clock func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.clock = clock
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserReader, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		numbers:     generator.NewAccountNumberGenerator(generator.DefaultPrefix),
		maxAttempts: defaultProvisionAttempts,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.AccountWithOwner, error) {
	account, err := s.accountRepo.FindAccountWithOwner(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountForOwner(ctx context.Context, ownerID string) (*domain.AccountWithOwner, error) {
	account, err := s.accountRepo.FindAccountByOwnerID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for owner", slog.String("owner_id", ownerID))
		}
		return nil, err
	}
	return s.GetAccountByID(ctx, account.AccountID)
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AccountWithOwner, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.accountRepo.ListAccountsWithOwners(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.AccountWithOwner{}, nil
	}
	return accounts, nil
}

func (s *accountService) Provision(ctx context.Context, ownerID string, initialStatus domain.AccountStatus, actor string) (*domain.Account, error) {
	if !initialStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, initialStatus)
	}
	if _, err := s.userRepo.FindUserByID(ctx, ownerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load owner for provisioning", slog.String("owner_id", ownerID))
		}
		return nil, err
	}

	existing, err := s.accountRepo.FindAccountByOwnerID(ctx, ownerID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: user %s already has account %s", apperrors.ErrDuplicate, ownerID, existing.AccountNumber)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check existing account", slog.String("owner_id", ownerID))
		return nil, err
	}

	var account domain.Account
	err = s.withUniqueNumber(ctx, func(number string) error {
		account = s.newAccount(ownerID, number, initialStatus, actorOrSystem(actor))
		return s.accountRepo.SaveAccount(ctx, account)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to provision account", slog.String("owner_id", ownerID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account provisioned",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("status", string(account.Status)))
	return &account, nil
}

func (s *accountService) RegisterCustomer(ctx context.Context, customer domain.NewCustomer, initialStatus domain.AccountStatus, actor string) (*domain.AccountWithOwner, error) {
	if !initialStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, initialStatus)
	}
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))
	if customer.Name == "" || customer.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", apperrors.ErrValidation)
	}

	userID := uuid.NewString()
	if actor == "" {
		// Self registration: the new user is the author of its own records.
		actor = userID
	}
	now := s.Now()
	user := domain.User{
		UserID:     userID,
		Name:       customer.Name,
		Email:      customer.Email,
		Mobile:     strings.TrimSpace(customer.Mobile),
		Address:    strings.TrimSpace(customer.Address),
		ProfilePic: strings.TrimSpace(customer.ProfilePic),
		Role:       domain.RoleUser,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	var account domain.Account
	err := s.withUniqueNumber(ctx, func(number string) error {
		account = s.newAccount(userID, number, initialStatus, actor)
		return s.accountRepo.SaveUserWithAccount(ctx, user, account)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to register customer")
		}
		return nil, err
	}

	s.LogInfo(ctx, "Customer registered",
		slog.String("user_id", userID),
		slog.String("account_id", account.AccountID),
		slog.String("status", string(account.Status)))
	return &domain.AccountWithOwner{Account: account, Owner: user}, nil
}

// withUniqueNumber calls save with fresh account numbers until it no longer reports
// a number collision or attempts run out.
func (s *accountService) withUniqueNumber(ctx context.Context, save func(number string) error) error {
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		number, err := s.numbers.Generate()
		if err != nil {
			return fmt.Errorf("failed to generate account number: %w", err)
		}
		err = save(number)
		if !errors.Is(err, apperrors.ErrDuplicateAccountNumber) {
			return err
		}
		lastErr = err
		s.LogWarn(ctx, "Account number collision, retrying",
			slog.String("account_number", number),
			slog.Int("attempt", attempt))
	}
	return apperrors.NewStorageError(fmt.Sprintf("no unique account number after %d attempts", s.maxAttempts), lastErr)
}

func (s *accountService) newAccount(ownerID, number string, status domain.AccountStatus, actor string) domain.Account {
	now := s.Now()
	return domain.Account{
		AccountID:     uuid.NewString(),
		OwnerID:       ownerID,
		AccountNumber: number,
		Balance:       0,
		Status:        status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
}

func (s *accountService) SetStatus(ctx context.Context, accountID string, status domain.AccountStatus, actor string) (*domain.Account, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}

	account, err := s.accountRepo.UpdateAccountStatus(ctx, accountID, status, actorOrSystem(actor), s.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update account status", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account status set", slog.String("account_id", accountID), slog.String("status", string(status)))
	return account, nil
}

func (s *accountService) Deprovision(ctx context.Context, accountID string, actor string) error {
	if err := s.accountRepo.DeleteAccountCascade(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deprovision account", slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account deprovisioned", slog.String("account_id", accountID), slog.String("actor", actorOrSystem(actor)))
	return nil
}
