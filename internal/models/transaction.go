package models

import (
	"database/sql"
	"time"
)

// TransactionType is stored as text in transactions.transaction_type.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction is a row of the append-only transactions table.
type Transaction struct {
	TransactionID   int64           `db:"transaction_id"`
	AccountID       string          `db:"account_id"`
	TransactionType TransactionType `db:"transaction_type"`
	Amount          int64           `db:"amount"`
	BalanceAfter    int64           `db:"balance_after"`
	IdempotencyKey  sql.NullString  `db:"idempotency_key"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}
