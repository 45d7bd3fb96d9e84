package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/models"
	"github.com/SscSPs/bank_ledger_app/internal/utils/mapping"
)

type PgxOutboxRepository struct {
	BaseRepository
}

func newPgxOutboxRepository(base BaseRepository) portsrepo.OutboxRepository {
	return &PgxOutboxRepository{BaseRepository: base}
}

var _ portsrepo.OutboxRepository = (*PgxOutboxRepository)(nil)

func (r *PgxOutboxRepository) FetchPendingMessages(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	query := `
		SELECT message_id, event_type, aggregate_id, payload, status, created_at, sent_at
		FROM outbox_messages
		WHERE status = $1
		ORDER BY created_at, message_id
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.OutboxPending), limit)
	if err != nil {
		return nil, mapError(err, "failed to fetch pending outbox messages")
	}
	defer rows.Close()

	messages := make([]domain.OutboxMessage, 0, limit)
	for rows.Next() {
		var m models.OutboxMessage
		if err := rows.Scan(&m.MessageID, &m.EventType, &m.AggregateID, &m.Payload, &m.Status, &m.CreatedAt, &m.SentAt); err != nil {
			return nil, mapError(err, "failed to scan outbox row")
		}
		messages = append(messages, mapping.ToDomainOutboxMessage(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate outbox rows")
	}
	return messages, nil
}

func (r *PgxOutboxRepository) MarkMessagesSent(ctx context.Context, messageIDs []string, sentAt time.Time) error {
	if len(messageIDs) == 0 {
		return nil
	}
	query := `
		UPDATE outbox_messages
		SET status = $1, sent_at = $2
		WHERE message_id = ANY($3::uuid[]) AND status = $4;
	`
	if _, err := r.Pool.Exec(ctx, query, string(domain.OutboxSent), sentAt, messageIDs, string(domain.OutboxPending)); err != nil {
		return mapError(err, "failed to mark outbox messages sent")
	}
	return nil
}
