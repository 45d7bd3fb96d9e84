package models

import (
	"database/sql"
	"time"
)

// AuditLog is a row of the audit_logs table.
type AuditLog struct {
	LogID     int64          `db:"log_id"`
	Message   string         `db:"message"`
	HaveError bool           `db:"have_error"`
	Type      int            `db:"log_type"`
	UserID    sql.NullString `db:"user_id"`
	CreatedAt time.Time      `db:"created_at"`
}
