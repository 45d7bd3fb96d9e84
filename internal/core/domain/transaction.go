package domain

import "time"

// TransactionType indicates whether a transaction is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction is an immutable ledger record affecting exactly one account.
type Transaction struct {
	TransactionID   int64           `json:"transactionID"` // Monotonically assigned
	AccountID       string          `json:"accountID"`     // FK -> accounts.account_id
	TransactionType TransactionType `json:"transactionType"`
	Amount          Money           `json:"amount"`       // Strictly positive
	BalanceAfter    Money           `json:"balanceAfter"` // Account balance once this record is applied
	IdempotencyKey  string          `json:"idempotencyKey,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// SignedAmount returns the effect of the transaction on the balance.
func (t Transaction) SignedAmount() Money {
	if t.TransactionType == Debit {
		return -t.Amount
	}
	return t.Amount
}

// Replay applies transactions in order starting from zero and returns the resulting balance.
func Replay(transactions []Transaction) Money {
	var balance Money
	for _, txn := range transactions {
		balance += txn.SignedAmount()
	}
	return balance
}
