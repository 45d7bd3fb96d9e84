package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/models"
	"github.com/SscSPs/bank_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `a.account_id, a.owner_id, a.account_number, a.balance, a.status,
		a.created_at, a.created_by, a.last_updated_at, a.last_updated_by`

const accountWithOwnerColumns = accountColumns + `,
		u.user_id, u.name, u.email, u.mobile, u.address, u.profile_pic, u.role,
		u.created_at, u.created_by, u.last_updated_at, u.last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(base BaseRepository) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: base}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// accountScanTargets returns the scan destinations matching accountColumns.
func accountScanTargets(m *models.Account) []any {
	return []any{
		&m.AccountID, &m.OwnerID, &m.AccountNumber, &m.Balance, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	}
}

// userScanTargets returns the scan destinations matching the user part of accountWithOwnerColumns.
func userScanTargets(m *models.User) []any {
	return []any{
		&m.UserID, &m.Name, &m.Email, &m.Mobile, &m.Address, &m.ProfilePic, &m.Role,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	}
}

func scanAccountWithOwner(row pgx.Row) (domain.AccountWithOwner, error) {
	var acc models.Account
	var owner models.User
	if err := row.Scan(append(accountScanTargets(&acc), userScanTargets(&owner)...)...); err != nil {
		return domain.AccountWithOwner{}, err
	}
	return mapping.ToDomainAccountWithOwner(acc, owner), nil
}

func (r *PgxAccountRepository) findAccount(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE ` + where
	var m models.Account
	if err := r.Pool.QueryRow(ctx, query, arg).Scan(accountScanTargets(&m)...); err != nil {
		return nil, mapError(err, "failed to find account")
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findAccount(ctx, `a.account_id = $1::uuid`, accountID)
}

func (r *PgxAccountRepository) FindAccountByOwnerID(ctx context.Context, ownerID string) (*domain.Account, error) {
	return r.findAccount(ctx, `a.owner_id = $1::uuid`, ownerID)
}

func (r *PgxAccountRepository) FindAccountWithOwner(ctx context.Context, accountID string) (*domain.AccountWithOwner, error) {
	query := `
		SELECT ` + accountWithOwnerColumns + `
		FROM accounts a
		JOIN users u ON u.user_id = a.owner_id
		WHERE a.account_id = $1::uuid;
	`
	account, err := scanAccountWithOwner(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, mapError(err, "failed to find account "+accountID)
	}
	return &account, nil
}

func (r *PgxAccountRepository) ListAccountsWithOwners(ctx context.Context, limit int, offset int) ([]domain.AccountWithOwner, error) {
	query := `
		SELECT ` + accountWithOwnerColumns + `
		FROM accounts a
		JOIN users u ON u.user_id = a.owner_id
		ORDER BY a.created_at DESC, a.account_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError(err, "failed to list accounts")
	}
	defer rows.Close()

	accounts := make([]domain.AccountWithOwner, 0, limit)
	for rows.Next() {
		account, err := scanAccountWithOwner(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan account row")
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate account rows")
	}
	return accounts, nil
}

const insertAccountQuery = `
	INSERT INTO accounts (account_id, owner_id, account_number, balance, status, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

func insertAccountArgs(a domain.Account) []any {
	m := mapping.ToModelAccount(a)
	return []any{m.AccountID, m.OwnerID, m.AccountNumber, m.Balance, m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy}
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	if _, err := r.Pool.Exec(ctx, insertAccountQuery, insertAccountArgs(account)...); err != nil {
		return mapError(err, "failed to save account "+account.AccountID)
	}
	return nil
}

// SaveUserWithAccount inserts the user and the account in one transaction.
func (r *PgxAccountRepository) SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertUserQuery, insertUserArgs(user)...); err != nil {
			return mapError(err, "failed to save user "+user.UserID)
		}
		if _, err := tx.Exec(ctx, insertAccountQuery, insertAccountArgs(account)...); err != nil {
			return mapError(err, "failed to save account "+account.AccountID)
		}
		return nil
	})
}

// UpdateAccountStatus sets the status. The audit columns are only touched when the value changes.
func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) (*domain.Account, error) {
	query := `
		UPDATE accounts a SET
			last_updated_at = CASE WHEN a.status = $2 THEN a.last_updated_at ELSE $3 END,
			last_updated_by = CASE WHEN a.status = $2 THEN a.last_updated_by ELSE $4 END,
			status = $2
		WHERE a.account_id = $1::uuid
		RETURNING ` + accountColumns + `;
	`
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, accountID, string(status), now, userID).Scan(accountScanTargets(&m)...)
	if err != nil {
		return nil, mapError(err, "failed to update status of account "+accountID)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// DeleteAccountCascade removes transactions, the account and its owner in one transaction.
// The account row is locked first so in-flight ledger units finish before deletion.
func (r *PgxAccountRepository) DeleteAccountCascade(ctx context.Context, accountID string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var ownerID string
		err := tx.QueryRow(ctx, `SELECT owner_id FROM accounts WHERE account_id = $1::uuid FOR UPDATE;`, accountID).Scan(&ownerID)
		if err != nil {
			return mapError(err, "failed to lock account "+accountID)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE account_id = $1::uuid;`, accountID); err != nil {
			return mapError(err, "failed to delete transactions of account "+accountID)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1::uuid;`, accountID); err != nil {
			return mapError(err, "failed to delete account "+accountID)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1::uuid;`, ownerID)
		if err != nil {
			return mapError(err, "failed to delete owner "+ownerID)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
