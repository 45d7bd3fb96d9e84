package dto

import "github.com/SscSPs/bank_ledger_app/internal/core/domain"

// CreateLogRequest is a log entry reported by a client.
type CreateLogRequest struct {
	Type      int    `json:"type" binding:"required,oneof=1 2"`
	Message   string `json:"message" binding:"required,max=2000"`
	HaveError bool   `json:"haveError"`
}

// ToAuditLog converts the request into an entry attributed to userID.
func (r CreateLogRequest) ToAuditLog(userID string) domain.AuditLog {
	return domain.AuditLog{
		Message:   r.Message,
		HaveError: r.HaveError,
		Type:      domain.AuditLogType(r.Type),
		UserID:    userID,
	}
}
