package memory

import (
	"context"
	"slices"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
)

// unit stages changes against a locked account entry until fn returns.
type unit struct {
	store   *Store
	entry   *accountEntry
	account domain.Account
	staged  []domain.Transaction
	events  []domain.OutboxMessage
}

var _ portsrepo.LedgerUnit = (*unit)(nil)

func (s *Store) WithinAccountLock(ctx context.Context, accountID string, fn func(ctx context.Context, unit portsrepo.LedgerUnit) error) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStorageError("ledger unit not started", err)
	}

	s.mu.RLock()
	e := s.entry(accountID)
	s.mu.RUnlock()
	if e == nil {
		return apperrors.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return apperrors.ErrNotFound
	}

	u := &unit{store: s, entry: e, account: e.account}
	if err := fn(ctx, u); err != nil {
		return err
	}

	// Commit. Nothing below can fail, so the unit is applied as a whole.
	e.account = u.account
	for _, txn := range u.staged {
		if txn.IdempotencyKey != "" {
			e.idempotency[txn.IdempotencyKey] = len(e.transactions)
		}
		e.transactions = append(e.transactions, txn)
	}
	if len(u.events) > 0 {
		s.outboxMu.Lock()
		s.outbox = append(s.outbox, u.events...)
		s.outboxMu.Unlock()
	}
	return nil
}

func (u *unit) Account() domain.Account {
	return u.account
}

func (u *unit) FindTransactionByIdempotencyKey(_ context.Context, key string) (*domain.Transaction, error) {
	if i, ok := u.entry.idempotency[key]; ok {
		txn := u.entry.transactions[i]
		return &txn, nil
	}
	for i := range u.staged {
		if u.staged[i].IdempotencyKey == key {
			txn := u.staged[i]
			return &txn, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (u *unit) Apply(_ context.Context, txn domain.Transaction) (*domain.Account, *domain.Transaction, error) {
	if txn.Amount <= 0 {
		return nil, nil, apperrors.ErrInvalidAmount
	}
	if txn.IdempotencyKey != "" {
		if _, err := u.FindTransactionByIdempotencyKey(context.Background(), txn.IdempotencyKey); err == nil {
			return nil, nil, apperrors.ErrIdempotencyConflict
		}
	}

	signed := txn.SignedAmount()
	if !u.account.Balance.CanAdd(signed) {
		return nil, nil, apperrors.ErrInvalidAmount
	}
	balance := u.account.Balance + signed
	if balance < 0 {
		return nil, nil, apperrors.ErrInsufficientFunds
	}

	now := u.store.now()
	txn.TransactionID = u.store.nextTxnID.Add(1)
	txn.AccountID = u.account.AccountID
	txn.BalanceAfter = balance
	txn.CreatedAt = now

	u.account.Balance = balance
	u.account.LastUpdatedAt = now
	u.account.LastUpdatedBy = txn.CreatedBy
	u.staged = append(u.staged, txn)

	account := u.account
	return &account, &txn, nil
}

func (u *unit) EnqueueEvent(_ context.Context, msg domain.OutboxMessage) error {
	if msg.Status == "" {
		msg.Status = domain.OutboxPending
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = u.store.now()
	}
	u.events = append(u.events, msg)
	return nil
}

func (s *Store) ReadStatement(_ context.Context, accountID string) (*domain.Account, []domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.entry(accountID)
	if e == nil {
		return nil, nil, apperrors.ErrNotFound
	}
	e.mu.Lock()
	account := e.account
	transactions := slices.Clone(e.transactions)
	e.mu.Unlock()

	if _, ok := s.users[account.OwnerID]; !ok {
		return nil, nil, apperrors.ErrNotFound
	}
	return &account, transactions, nil
}
