package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// LedgerUnit is the view of one locked account inside an atomic unit of work.
// Nothing done through it is visible to others until the unit commits.
type LedgerUnit interface {
	// Account returns the locked account as it currently stands inside the unit.
	Account() domain.Account

	// FindTransactionByIdempotencyKey returns the committed transaction recorded under key
	// for the locked account, or apperrors.ErrNotFound.
	FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error)

	// Apply adds txn's signed amount to the balance and appends txn. The store assigns
	// TransactionID, CreatedAt and BalanceAfter. A resulting negative balance yields
	// apperrors.ErrInsufficientFunds.
	Apply(ctx context.Context, txn domain.Transaction) (*domain.Account, *domain.Transaction, error)

	// EnqueueEvent records an outbox message that commits together with the unit.
	EnqueueEvent(ctx context.Context, msg domain.OutboxMessage) error
}

// LedgerRepository provides serialized access to single accounts.
type LedgerRepository interface {
	// WithinAccountLock runs fn while holding an exclusive lock on the account. The unit
	// commits when fn returns nil and is discarded otherwise. A missing account yields
	// apperrors.ErrNotFound. The commit is not abandoned when ctx is cancelled after fn returns.
	WithinAccountLock(ctx context.Context, accountID string, fn func(ctx context.Context, unit LedgerUnit) error) error

	// ReadStatement returns the account and its transactions in commit order from one
	// consistent snapshot. A missing account or owner yields apperrors.ErrNotFound.
	ReadStatement(ctx context.Context, accountID string) (*domain.Account, []domain.Transaction, error)
}
