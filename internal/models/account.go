package models

// AccountStatus mirrors the accounts.status CHECK constraint.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Account is a row of the accounts table. Balance is stored in minor units.
type Account struct {
	AccountID     string        `db:"account_id"`
	OwnerID       string        `db:"owner_id"`
	AccountNumber string        `db:"account_number"`
	Balance       int64         `db:"balance"`
	Status        AccountStatus `db:"status"`
	AuditFields
}
