package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.entry(accountID)
	if e == nil {
		return nil, apperrors.ErrNotFound
	}
	e.mu.Lock()
	account := e.account
	e.mu.Unlock()
	return &account, nil
}

func (s *Store) FindAccountByOwnerID(ctx context.Context, ownerID string) (*domain.Account, error) {
	s.mu.RLock()
	accountID, ok := s.owners[ownerID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.FindAccountByID(ctx, accountID)
}

func (s *Store) FindAccountWithOwner(_ context.Context, accountID string) (*domain.AccountWithOwner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.entry(accountID)
	if e == nil {
		return nil, apperrors.ErrNotFound
	}
	e.mu.Lock()
	account := e.account
	e.mu.Unlock()

	owner, ok := s.users[account.OwnerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &domain.AccountWithOwner{Account: account, Owner: owner}, nil
}

func (s *Store) ListAccountsWithOwners(_ context.Context, limit int, offset int) ([]domain.AccountWithOwner, error) {
	s.mu.RLock()
	all := make([]domain.AccountWithOwner, 0, len(s.accounts))
	for _, e := range s.accounts {
		e.mu.Lock()
		account := e.account
		e.mu.Unlock()
		if owner, ok := s.users[account.OwnerID]; ok {
			all = append(all, domain.AccountWithOwner{Account: account, Owner: owner})
		}
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].AccountID < all[j].AccountID
	})

	if offset >= len(all) {
		return []domain.AccountWithOwner{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[account.OwnerID]; !ok {
		return fmt.Errorf("%w: owner %s", apperrors.ErrNotFound, account.OwnerID)
	}
	if err := s.checkAccountUnique(account); err != nil {
		return err
	}
	s.insertAccount(account)
	return nil
}

func (s *Store) SaveUserWithAccount(_ context.Context, user domain.User, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUserUnique(user); err != nil {
		return err
	}
	if err := s.checkAccountUnique(account); err != nil {
		return err
	}
	s.insertUser(user)
	s.insertAccount(account)
	return nil
}

// checkAccountUnique mirrors the unique constraints of the accounts table. Callers must hold s.mu.
func (s *Store) checkAccountUnique(account domain.Account) error {
	if _, ok := s.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	if _, ok := s.owners[account.OwnerID]; ok {
		return fmt.Errorf("%w: user %s already has an account", apperrors.ErrDuplicate, account.OwnerID)
	}
	if _, ok := s.numbers[account.AccountNumber]; ok {
		return apperrors.ErrDuplicateAccountNumber
	}
	return nil
}

func (s *Store) insertAccount(account domain.Account) {
	s.accounts[account.AccountID] = &accountEntry{
		account:     account,
		idempotency: make(map[string]int),
	}
	s.owners[account.OwnerID] = account.AccountID
	s.numbers[account.AccountNumber] = account.AccountID
}

func (s *Store) UpdateAccountStatus(_ context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.entry(accountID)
	if e == nil {
		return nil, apperrors.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.account.Status != status {
		e.account.Status = status
		e.account.LastUpdatedAt = now
		e.account.LastUpdatedBy = userID
	}
	account := e.account
	return &account, nil
}

func (s *Store) DeleteAccountCascade(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(accountID)
	if e == nil {
		return apperrors.ErrNotFound
	}
	// Waits for any ledger unit in flight on this account.
	e.mu.Lock()
	e.removed = true
	ownerID := e.account.OwnerID
	number := e.account.AccountNumber
	e.transactions = nil
	e.mu.Unlock()

	delete(s.accounts, accountID)
	delete(s.owners, ownerID)
	delete(s.numbers, number)
	if owner, ok := s.users[ownerID]; ok {
		delete(s.emails, owner.Email)
		delete(s.users, ownerID)
	}
	return nil
}
