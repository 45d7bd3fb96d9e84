package pgsql

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/utils/mapping"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(base BaseRepository) portsrepo.AuditLogRepository {
	return &PgxAuditLogRepository{BaseRepository: base}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	m := mapping.ToModelAuditLog(entry)
	query := `
		INSERT INTO audit_logs (message, have_error, log_type, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.Pool.Exec(ctx, query, m.Message, m.HaveError, m.Type, m.UserID, m.CreatedAt); err != nil {
		return mapError(err, "failed to save audit log")
	}
	return nil
}
