package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// LedgerWriterSvc mutates balances. It is the only path that writes a balance or a transaction.
type LedgerWriterSvc interface {
	// Credit adds req.Amount to the account and appends a CREDIT transaction atomically.
	Credit(ctx context.Context, req domain.LedgerRequest) (*domain.LedgerResult, error)

	// Debit subtracts req.Amount from the account and appends a DEBIT transaction atomically.
	Debit(ctx context.Context, req domain.LedgerRequest) (*domain.LedgerResult, error)
}

// LedgerReaderSvc produces statements.
type LedgerReaderSvc interface {
	// Statement returns the balance and the credit/debit histories of an account.
	Statement(ctx context.Context, accountID string) (*domain.Statement, error)

	// StatementForOwner returns the statement of the account owned by ownerID.
	StatementForOwner(ctx context.Context, ownerID string) (*domain.Statement, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
