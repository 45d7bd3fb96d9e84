package models

import (
	"database/sql"
	"time"
)

// OutboxMessage is a row of the outbox_messages table.
type OutboxMessage struct {
	MessageID   string       `db:"message_id"`
	EventType   string       `db:"event_type"`
	AggregateID string       `db:"aggregate_id"`
	Payload     []byte       `db:"payload"`
	Status      string       `db:"status"`
	CreatedAt   time.Time    `db:"created_at"`
	SentAt      sql.NullTime `db:"sent_at"`
}
