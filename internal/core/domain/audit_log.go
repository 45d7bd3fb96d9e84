package domain

import "time"

// AuditLogType distinguishes where an audit entry originated.
type AuditLogType int

const (
	AuditLogFrontend AuditLogType = 1
	AuditLogBackend  AuditLogType = 2
)

// AuditLog is a record of an API call or a client-side event.
type AuditLog struct {
	LogID     int64        `json:"logID"`
	Message   string       `json:"message"`
	HaveError bool         `json:"haveError"`
	Type      AuditLogType `json:"type"`
	UserID    string       `json:"userID,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}
