package domain

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// IsValid reports whether s is a known status.
func (s AccountStatus) IsValid() bool {
	return s == AccountActive || s == AccountInactive
}

// Account represents a customer bank account within the core domain.
// Balance is only ever written by the ledger service.
type Account struct {
	AccountID     string        `json:"accountID"`     // Primary Key (UUID)
	OwnerID       string        `json:"ownerID"`       // FK -> users.user_id, unique
	AccountNumber string        `json:"accountNumber"` // Human readable, unique, immutable
	Balance       Money         `json:"balance"`       // Minor units, never negative
	Status        AccountStatus `json:"status"`
	AuditFields
}

// IsActive reports whether the account may take part in ledger operations.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}

// AccountWithOwner pairs an account with its owner's profile for listing views.
type AccountWithOwner struct {
	Account
	Owner User `json:"owner"`
}
