package domain

import (
	"encoding/json"
	"time"
)

// OutboxStatus tracks delivery of an outbox message.
type OutboxStatus string

const (
	OutboxPending OutboxStatus = "PENDING"
	OutboxSent    OutboxStatus = "SENT"
)

// EventTransactionCommitted is emitted for every committed credit or debit.
const EventTransactionCommitted = "ledger.transaction.committed"

// OutboxMessage is an event written in the same atomic unit as the change it describes.
type OutboxMessage struct {
	MessageID   string
	EventType   string
	AggregateID string // account id, used as the partition key
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	SentAt      *time.Time
}

// TransactionCommittedEvent is the payload of EventTransactionCommitted.
type TransactionCommittedEvent struct {
	EventType       string          `json:"eventType"`
	TransactionID   int64           `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	AccountNumber   string          `json:"accountNumber"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          Money           `json:"amount"`
	BalanceAfter    Money           `json:"balanceAfter"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// NewTransactionCommittedPayload encodes the event payload for a committed transaction.
func NewTransactionCommittedPayload(account Account, txn Transaction) ([]byte, error) {
	return json.Marshal(TransactionCommittedEvent{
		EventType:       EventTransactionCommitted,
		TransactionID:   txn.TransactionID,
		AccountID:       account.AccountID,
		AccountNumber:   account.AccountNumber,
		TransactionType: txn.TransactionType,
		Amount:          txn.Amount,
		BalanceAfter:    txn.BalanceAfter,
		CreatedAt:       txn.CreatedAt,
	})
}
