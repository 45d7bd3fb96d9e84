package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
)

const maxAuditMessageLength = 2000

type auditService struct {
	BaseService
	auditRepo portsrepo.AuditLogRepository
}

func NewAuditService(auditRepo portsrepo.AuditLogRepository) portssvc.AuditSvc {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

// Record validates and stores an audit entry.
func (s *auditService) Record(ctx context.Context, entry domain.AuditLog) error {
	entry.Message = strings.TrimSpace(entry.Message)
	if entry.Message == "" {
		return fmt.Errorf("%w: audit message is required", apperrors.ErrValidation)
	}
	if len(entry.Message) > maxAuditMessageLength {
		entry.Message = entry.Message[:maxAuditMessageLength]
	}
	if entry.Type != domain.AuditLogFrontend && entry.Type != domain.AuditLogBackend {
		return fmt.Errorf("%w: unknown audit log type %d", apperrors.ErrValidation, entry.Type)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.Now()
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save audit log")
		return err
	}
	return nil
}
