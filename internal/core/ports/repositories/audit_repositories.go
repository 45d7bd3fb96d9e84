package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// AuditLogRepository persists audit entries.
type AuditLogRepository interface {
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// OutboxRepository gives the publisher access to undelivered events.
type OutboxRepository interface {
	// FetchPendingMessages returns up to limit PENDING messages, oldest first.
	FetchPendingMessages(ctx context.Context, limit int) ([]domain.OutboxMessage, error)

	// MarkMessagesSent flags the given messages as delivered.
	MarkMessagesSent(ctx context.Context, messageIDs []string, sentAt time.Time) error
}
