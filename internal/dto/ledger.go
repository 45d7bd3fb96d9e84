package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTransactionRequest is the body of a credit or debit call. Amount is in major units,
// as a JSON number or string, with at most two decimal places.
type LedgerTransactionRequest struct {
	AccountID string          `json:"accountID" binding:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" binding:"required,decimal_amount" swaggertype:"string" example:"125.50"`
}

// ToLedgerRequest converts the request to minor units.
func (r LedgerTransactionRequest) ToLedgerRequest(idempotencyKey, requestedBy string) (domain.LedgerRequest, error) {
	amount, ok := domain.MoneyFromDecimal(r.Amount)
	if !ok || amount <= 0 {
		return domain.LedgerRequest{}, apperrors.ErrInvalidAmount
	}
	return domain.LedgerRequest{
		AccountID:      r.AccountID,
		Amount:         amount,
		IdempotencyKey: idempotencyKey,
		RequestedBy:    requestedBy,
	}, nil
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID   int64     `json:"transactionID"`
	AccountID       string    `json:"accountID"`
	TransactionType string    `json:"transactionType" example:"CREDIT"`
	Amount          string    `json:"amount" example:"125.50"`
	BalanceAfter    string    `json:"balanceAfter" example:"300.00"`
	IdempotencyKey  string    `json:"idempotencyKey,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `json:"createdBy"`
}

func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		TransactionType: string(txn.TransactionType),
		Amount:          txn.Amount.String(),
		BalanceAfter:    txn.BalanceAfter.String(),
		IdempotencyKey:  txn.IdempotencyKey,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

func toTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// LedgerTransactionResponse is returned by credit and debit.
type LedgerTransactionResponse struct {
	Account     AccountResponse     `json:"account"`
	Transaction TransactionResponse `json:"transaction"`
	Replayed    bool                `json:"replayed"`
}

func ToLedgerTransactionResponse(res *domain.LedgerResult) LedgerTransactionResponse {
	return LedgerTransactionResponse{
		Account:     ToAccountResponse(&res.Account),
		Transaction: ToTransactionResponse(&res.Transaction),
		Replayed:    res.Replayed,
	}
}

// StatementResponse is the balance and the per-type history of an account, oldest first.
type StatementResponse struct {
	AccountID     string                `json:"accountID"`
	AccountNumber string                `json:"accountNumber"`
	Status        string                `json:"status"`
	Balance       string                `json:"balance" example:"300.00"`
	CreditHistory []TransactionResponse `json:"creditHistory"`
	DebitHistory  []TransactionResponse `json:"debitHistory"`
}

func ToStatementResponse(st *domain.Statement) StatementResponse {
	return StatementResponse{
		AccountID:     st.Account.AccountID,
		AccountNumber: st.Account.AccountNumber,
		Status:        string(st.Account.Status),
		Balance:       st.Balance.String(),
		CreditHistory: toTransactionResponses(st.CreditHistory),
		DebitHistory:  toTransactionResponses(st.DebitHistory),
	}
}
