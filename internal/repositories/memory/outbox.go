package memory

import (
	"context"
	"slices"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

func (s *Store) FetchPendingMessages(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	s.outboxMu.Lock()
	defer s.outboxMu.Unlock()

	pending := make([]domain.OutboxMessage, 0, limit)
	for _, msg := range s.outbox {
		if len(pending) == limit {
			break
		}
		if msg.Status == domain.OutboxPending {
			pending = append(pending, msg)
		}
	}
	return pending, nil
}

func (s *Store) MarkMessagesSent(_ context.Context, messageIDs []string, sentAt time.Time) error {
	s.outboxMu.Lock()
	defer s.outboxMu.Unlock()

	for i := range s.outbox {
		if slices.Contains(messageIDs, s.outbox[i].MessageID) {
			t := sentAt
			s.outbox[i].Status = domain.OutboxSent
			s.outbox[i].SentAt = &t
		}
	}
	return nil
}

// OutboxMessages returns a copy of every outbox message in insertion order.
func (s *Store) OutboxMessages() []domain.OutboxMessage {
	s.outboxMu.Lock()
	defer s.outboxMu.Unlock()
	return slices.Clone(s.outbox)
}
