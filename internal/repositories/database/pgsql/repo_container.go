package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, commitTimeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, CommitTimeout: commitTimeout}

	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(base),
		UserRepo:    newPgxUserRepository(base),
		LedgerRepo:  newPgxLedgerRepository(base),
		AuditRepo:   newPgxAuditLogRepository(base),
		OutboxRepo:  newPgxOutboxRepository(base),
	}
}
