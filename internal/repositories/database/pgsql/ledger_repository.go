package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/models"
	"github.com/SscSPs/bank_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `transaction_id, account_id, transaction_type, amount, balance_after,
		idempotency_key, created_at, created_by`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(base BaseRepository) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: base}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func transactionScanTargets(m *models.Transaction) []any {
	return []any{
		&m.TransactionID, &m.AccountID, &m.TransactionType, &m.Amount, &m.BalanceAfter,
		&m.IdempotencyKey, &m.CreatedAt, &m.CreatedBy,
	}
}

// pgxLedgerUnit works on one account row locked with SELECT ... FOR UPDATE.
type pgxLedgerUnit struct {
	tx      pgx.Tx
	account domain.Account
}

var _ portsrepo.LedgerUnit = (*pgxLedgerUnit)(nil)

// WithinAccountLock locks the account row for the lifetime of the transaction.
// Concurrent units on the same account queue on the row lock.
func (r *PgxLedgerRepository) WithinAccountLock(ctx context.Context, accountID string, fn func(ctx context.Context, unit portsrepo.LedgerUnit) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.account_id = $1::uuid FOR UPDATE;`
	var m models.Account
	if err := tx.QueryRow(ctx, query, accountID).Scan(accountScanTargets(&m)...); err != nil {
		return mapError(err, "failed to lock account "+accountID)
	}

	unit := &pgxLedgerUnit{tx: tx, account: mapping.ToDomainAccount(m)}
	if err := fn(ctx, unit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (u *pgxLedgerUnit) Account() domain.Account {
	return u.account
}

func (u *pgxLedgerUnit) FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1::uuid AND idempotency_key = $2;
	`
	var m models.Transaction
	if err := u.tx.QueryRow(ctx, query, u.account.AccountID, key).Scan(transactionScanTargets(&m)...); err != nil {
		return nil, mapError(err, "failed to look up idempotency key")
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// Apply updates the balance and appends the transaction row inside the unit.
// The CHECK constraints on balance reject anything that would go negative.
func (u *pgxLedgerUnit) Apply(ctx context.Context, txn domain.Transaction) (*domain.Account, *domain.Transaction, error) {
	if txn.Amount <= 0 {
		return nil, nil, apperrors.ErrInvalidAmount
	}
	signed := txn.SignedAmount()
	if !u.account.Balance.CanAdd(signed) {
		return nil, nil, apperrors.ErrInvalidAmount
	}

	updateQuery := `
		UPDATE accounts a SET
			balance = a.balance + $2,
			last_updated_at = clock_timestamp(),
			last_updated_by = $3
		WHERE a.account_id = $1::uuid
		RETURNING ` + accountColumns + `;
	`
	var am models.Account
	err := u.tx.QueryRow(ctx, updateQuery, u.account.AccountID, int64(signed), txn.CreatedBy).Scan(accountScanTargets(&am)...)
	if err != nil {
		return nil, nil, mapError(err, "failed to update balance of account "+u.account.AccountID)
	}

	tm := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (account_id, transaction_type, amount, balance_after, idempotency_key, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, clock_timestamp(), $6)
		RETURNING ` + transactionColumns + `;
	`
	var stored models.Transaction
	err = u.tx.QueryRow(ctx, insertQuery,
		u.account.AccountID, string(tm.TransactionType), tm.Amount, am.Balance, tm.IdempotencyKey, tm.CreatedBy,
	).Scan(transactionScanTargets(&stored)...)
	if err != nil {
		return nil, nil, mapError(err, "failed to append transaction")
	}

	u.account = mapping.ToDomainAccount(am)
	account := u.account
	appended := mapping.ToDomainTransaction(stored)
	return &account, &appended, nil
}

func (u *pgxLedgerUnit) EnqueueEvent(ctx context.Context, msg domain.OutboxMessage) error {
	if msg.Status == "" {
		msg.Status = domain.OutboxPending
	}
	m := mapping.ToModelOutboxMessage(msg)
	query := `
		INSERT INTO outbox_messages (message_id, event_type, aggregate_id, payload, status, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()));
	`
	var createdAt any
	if !m.CreatedAt.IsZero() {
		createdAt = m.CreatedAt
	}
	if _, err := u.tx.Exec(ctx, query, m.MessageID, m.EventType, m.AggregateID, string(m.Payload), m.Status, createdAt); err != nil {
		return mapError(err, fmt.Sprintf("failed to enqueue %s event", m.EventType))
	}
	return nil
}

// ReadStatement reads the account and its history from a single snapshot.
func (r *PgxLedgerRepository) ReadStatement(ctx context.Context, accountID string) (*domain.Account, []domain.Transaction, error) {
	tx, err := r.BeginReadOnlySnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // read-only

	accountQuery := `
		SELECT ` + accountColumns + `
		FROM accounts a
		JOIN users u ON u.user_id = a.owner_id
		WHERE a.account_id = $1::uuid;
	`
	var am models.Account
	if err := tx.QueryRow(ctx, accountQuery, accountID).Scan(accountScanTargets(&am)...); err != nil {
		return nil, nil, mapError(err, "failed to read account "+accountID)
	}

	txnQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1::uuid
		ORDER BY transaction_id;
	`
	rows, err := tx.Query(ctx, txnQuery, accountID)
	if err != nil {
		return nil, nil, mapError(err, "failed to read transactions of account "+accountID)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(transactionScanTargets(&m)...); err != nil {
			return nil, nil, mapError(err, "failed to scan transaction row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapError(err, "failed to iterate transaction rows")
	}

	account := mapping.ToDomainAccount(am)
	return &account, mapping.ToDomainTransactionSlice(ms), nil
}
