package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/models"
	"github.com/SscSPs/bank_ledger_app/internal/utils/mapping"
)

const userColumns = `user_id, name, email, mobile, address, profile_pic, role,
		created_at, created_by, last_updated_at, last_updated_by`

const insertUserQuery = `
	INSERT INTO users (user_id, name, email, mobile, address, profile_pic, role, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

func insertUserArgs(u domain.User) []any {
	m := mapping.ToModelUser(u)
	return []any{m.UserID, m.Name, m.Email, m.Mobile, m.Address, m.ProfilePic, m.Role, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy}
}

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(base BaseRepository) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: base}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1::uuid;`
	var m models.User
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(userScanTargets(&m)...); err != nil {
		return nil, mapError(err, "failed to find user "+userID)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if _, err := r.Pool.Exec(ctx, insertUserQuery, insertUserArgs(user)...); err != nil {
		return mapError(err, "failed to save user "+user.UserID)
	}
	return nil
}

// UpdateUserProfile only overwrites the columns whose parameter is non-null.
func (r *PgxUserRepository) UpdateUserProfile(ctx context.Context, userID string, update domain.ProfileUpdate, updatedBy string, now time.Time) (*domain.User, error) {
	query := `
		UPDATE users SET
			name = COALESCE($2, name),
			mobile = COALESCE($3, mobile),
			address = COALESCE($4, address),
			profile_pic = COALESCE($5, profile_pic),
			last_updated_at = $6,
			last_updated_by = $7
		WHERE user_id = $1::uuid
		RETURNING ` + userColumns + `;
	`
	var m models.User
	err := r.Pool.QueryRow(ctx, query,
		userID, update.Name, update.Mobile, update.Address, update.ProfilePic, now, updatedBy,
	).Scan(userScanTargets(&m)...)
	if err != nil {
		return nil, mapError(err, "failed to update user "+userID)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}
