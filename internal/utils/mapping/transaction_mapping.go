package mapping

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		TransactionType: models.TransactionType(d.TransactionType),
		Amount:          int64(d.Amount),
		BalanceAfter:    int64(d.BalanceAfter),
		IdempotencyKey:  ToNullString(d.IdempotencyKey),
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          domain.Money(m.Amount),
		BalanceAfter:    domain.Money(m.BalanceAfter),
		IdempotencyKey:  m.IdempotencyKey.String,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
