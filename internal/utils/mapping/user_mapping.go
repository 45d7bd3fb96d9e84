package mapping

import (
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:      d.UserID,
		Name:        d.Name,
		Email:       d.Email,
		Mobile:      ToNullString(d.Mobile),
		Address:     ToNullString(d.Address),
		ProfilePic:  ToNullString(d.ProfilePic),
		Role:        string(d.Role),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		Name:        m.Name,
		Email:       m.Email,
		Mobile:      m.Mobile.String,
		Address:     m.Address.String,
		ProfilePic:  m.ProfilePic.String,
		Role:        domain.Role(m.Role),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
