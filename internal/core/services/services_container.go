package services

import (
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
	"github.com/SscSPs/bank_ledger_app/internal/utils/generator"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger: NewLedgerService(
			repos.LedgerRepo,
			repos.AccountRepo,
			WithEventPublishing(cfg.EventPublishingEnabled()),
		),
		Account: NewAccountService(
			repos.AccountRepo,
			repos.UserRepo,
			WithAccountNumberSource(generator.NewAccountNumberGenerator(cfg.AccountNumberPrefix)),
			WithProvisionMaxAttempts(cfg.ProvisionMaxAttempts),
		),
		User:  NewUserService(repos.UserRepo),
		Audit: NewAuditService(repos.AuditRepo),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.UserSvcFacade    = (*userService)(nil)
	_ portssvc.AuditSvc         = (*auditService)(nil)
)
