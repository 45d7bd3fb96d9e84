package mapping

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/models"
)

// ToModelOutboxMessage converts a domain OutboxMessage to a model OutboxMessage
func ToModelOutboxMessage(d domain.OutboxMessage) models.OutboxMessage {
	m := models.OutboxMessage{
		MessageID:   d.MessageID,
		EventType:   d.EventType,
		AggregateID: d.AggregateID,
		Payload:     d.Payload,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt,
	}
	if d.SentAt != nil {
		m.SentAt.Time, m.SentAt.Valid = *d.SentAt, true
	}
	return m
}

// ToDomainOutboxMessage converts a model OutboxMessage to a domain OutboxMessage
func ToDomainOutboxMessage(m models.OutboxMessage) domain.OutboxMessage {
	d := domain.OutboxMessage{
		MessageID:   m.MessageID,
		EventType:   m.EventType,
		AggregateID: m.AggregateID,
		Payload:     m.Payload,
		Status:      domain.OutboxStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
	if m.SentAt.Valid {
		t := m.SentAt.Time
		d.SentAt = &t
	}
	return d
}
