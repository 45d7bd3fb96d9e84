package mapping

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		OwnerID:       d.OwnerID,
		AccountNumber: d.AccountNumber,
		Balance:       int64(d.Balance),
		Status:        models.AccountStatus(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		OwnerID:       m.OwnerID,
		AccountNumber: m.AccountNumber,
		Balance:       domain.Money(m.Balance),
		Status:        domain.AccountStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountWithOwner joins a model Account with its owner.
func ToDomainAccountWithOwner(a models.Account, u models.User) domain.AccountWithOwner {
	return domain.AccountWithOwner{
		Account: ToDomainAccount(a),
		Owner:   ToDomainUser(u),
	}
}
