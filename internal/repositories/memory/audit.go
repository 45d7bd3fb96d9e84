package memory

import (
	"context"
	"slices"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

func (s *Store) SaveAuditLog(_ context.Context, entry domain.AuditLog) error {
	s.logMu.Lock()
	defer s.logMu.Unlock()

	entry.LogID = int64(len(s.auditLogs)) + 1
	s.auditLogs = append(s.auditLogs, entry)
	return nil
}

// AuditLogs returns a copy of the stored audit entries in insertion order.
func (s *Store) AuditLogs() []domain.AuditLog {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	return slices.Clone(s.auditLogs)
}
