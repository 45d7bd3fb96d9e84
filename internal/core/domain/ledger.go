package domain

// LedgerRequest is a validated credit or debit command.
type LedgerRequest struct {
	AccountID      string
	Amount         Money
	IdempotencyKey string // Optional; scoped to the account
	RequestedBy    string
}

// LedgerResult is the outcome of a committed credit or debit.
type LedgerResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
	Replayed    bool        `json:"replayed"` // true when an earlier commit with the same idempotency key was returned
}

// Statement is a consistent view of an account balance and its history.
type Statement struct {
	Account       Account       `json:"account"`
	Balance       Money         `json:"balance"`
	CreditHistory []Transaction `json:"creditHistory"`
	DebitHistory  []Transaction `json:"debitHistory"`
}

// NewStatement partitions transactions (already in commit order) by type.
func NewStatement(account Account, transactions []Transaction) Statement {
	st := Statement{
		Account:       account,
		Balance:       account.Balance,
		CreditHistory: []Transaction{},
		DebitHistory:  []Transaction{},
	}
	for _, txn := range transactions {
		switch txn.TransactionType {
		case Credit:
			st.CreditHistory = append(st.CreditHistory, txn)
		case Debit:
			st.DebitHistory = append(st.DebitHistory, txn)
		}
	}
	return st
}
