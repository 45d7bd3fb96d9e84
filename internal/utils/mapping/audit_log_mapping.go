package mapping

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/models"
)

// ToModelAuditLog converts a domain AuditLog to a model AuditLog
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		LogID:     d.LogID,
		Message:   d.Message,
		HaveError: d.HaveError,
		Type:      int(d.Type),
		UserID:    ToNullString(d.UserID),
		CreatedAt: d.CreatedAt,
	}
}
