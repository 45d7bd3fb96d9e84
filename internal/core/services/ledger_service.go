package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/google/uuid"
)

// ledgerService is the only writer of balances and the only creator of transactions.
type ledgerService struct {
	BaseService
	ledgerRepo    portsrepo.LedgerRepository
	accountRepo   portsrepo.AccountReader
	publishEvents bool
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithEventPublishing makes every committed transaction enqueue an outbox event in the same unit.
func WithEventPublishing(enabled bool) LedgerServiceOption {
	return func(s *ledgerService) {
		s.publishEvents = enabled
	}
}

// WithLedgerClock overrides the clock used for event timestamps.
func WithLedgerClock(clock func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.clock = clock
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountReader, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) Credit(ctx context.Context, req domain.LedgerRequest) (*domain.LedgerResult, error) {
	return s.post(ctx, domain.Credit, req)
}

func (s *ledgerService) Debit(ctx context.Context, req domain.LedgerRequest) (*domain.LedgerResult, error) {
	return s.post(ctx, domain.Debit, req)
}

// post validates req and applies it to the account inside a single locked unit.
// Status, idempotency and funds are all evaluated under the lock.
func (s *ledgerService) post(ctx context.Context, txnType domain.TransactionType, req domain.LedgerRequest) (*domain.LedgerResult, error) {
	operation := strings.ToLower(string(txnType))

	if req.AccountID == "" {
		return nil, s.finish(ctx, operation, req, fmt.Errorf("%w: account id is required", apperrors.ErrValidation))
	}
	if req.Amount <= 0 {
		return nil, s.finish(ctx, operation, req, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount))
	}
	actor := actorOrSystem(req.RequestedBy)

	var result domain.LedgerResult
	err := s.ledgerRepo.WithinAccountLock(ctx, req.AccountID, func(ctx context.Context, unit portsrepo.LedgerUnit) error {
		account := unit.Account()

		if req.IdempotencyKey != "" {
			prior, err := unit.FindTransactionByIdempotencyKey(ctx, req.IdempotencyKey)
			switch {
			case err == nil:
				if prior.TransactionType != txnType || prior.Amount != req.Amount {
					return fmt.Errorf("%w: key %q was used for %s of %s", apperrors.ErrIdempotencyConflict, req.IdempotencyKey, prior.TransactionType, prior.Amount)
				}
				result = domain.LedgerResult{Account: account, Transaction: *prior, Replayed: true}
				return nil
			case !errors.Is(err, apperrors.ErrNotFound):
				return err
			}
		}

		if !account.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountInactive, account.AccountNumber, account.Status)
		}

		switch txnType {
		case domain.Debit:
			if account.Balance < req.Amount {
				return fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, account.Balance, req.Amount)
			}
		case domain.Credit:
			if !account.Balance.CanAdd(req.Amount) {
				return fmt.Errorf("%w: balance would exceed the maximum representable amount", apperrors.ErrInvalidAmount)
			}
		}

		updated, txn, err := unit.Apply(ctx, domain.Transaction{
			AccountID:       account.AccountID,
			TransactionType: txnType,
			Amount:          req.Amount,
			IdempotencyKey:  req.IdempotencyKey,
			CreatedBy:       actor,
		})
		if err != nil {
			return err
		}

		if s.publishEvents {
			if err := s.enqueueCommitted(ctx, unit, *updated, *txn); err != nil {
				return err
			}
		}

		result = domain.LedgerResult{Account: *updated, Transaction: *txn}
		return nil
	})
	if err != nil {
		return nil, s.finish(ctx, operation, req, err)
	}

	outcome := "success"
	if result.Replayed {
		outcome = "replayed"
	}
	utils.LedgerOperationsTotal.WithLabelValues(operation, outcome).Inc()
	s.LogInfo(ctx, "Ledger transaction committed",
		slog.String("operation", operation),
		slog.String("account_id", req.AccountID),
		slog.Int64("transaction_id", result.Transaction.TransactionID),
		slog.Int64("amount", int64(req.Amount)),
		slog.Int64("balance_after", int64(result.Transaction.BalanceAfter)),
		slog.Bool("replayed", result.Replayed))
	return &result, nil
}

func (s *ledgerService) enqueueCommitted(ctx context.Context, unit portsrepo.LedgerUnit, account domain.Account, txn domain.Transaction) error {
	payload, err := domain.NewTransactionCommittedPayload(account, txn)
	if err != nil {
		return fmt.Errorf("failed to encode ledger event: %w", err)
	}
	return unit.EnqueueEvent(ctx, domain.OutboxMessage{
		MessageID:   uuid.NewString(),
		EventType:   domain.EventTransactionCommitted,
		AggregateID: account.AccountID,
		Payload:     payload,
		Status:      domain.OutboxPending,
		CreatedAt:   s.Now(),
	})
}

// finish records the failed outcome and logs it at a level matching its cause.
func (s *ledgerService) finish(ctx context.Context, operation string, req domain.LedgerRequest, err error) error {
	utils.LedgerOperationsTotal.WithLabelValues(operation, outcomeLabel(err)).Inc()
	attrs := []any{
		slog.String("operation", operation),
		slog.String("account_id", req.AccountID),
		slog.Int64("amount", int64(req.Amount)),
	}
	if errors.Is(err, apperrors.ErrStorage) {
		s.LogError(ctx, err, "Ledger transaction failed", attrs...)
	} else {
		s.LogWarn(ctx, "Ledger transaction rejected", append(attrs, slog.String("reason", err.Error()))...)
	}
	return err
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, apperrors.ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrIdempotencyConflict):
		return "idempotency_conflict"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	default:
		return "storage_failure"
	}
}

func (s *ledgerService) Statement(ctx context.Context, accountID string) (*domain.Statement, error) {
	account, transactions, err := s.ledgerRepo.ReadStatement(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to read statement", slog.String("account_id", accountID))
		}
		return nil, err
	}

	statement := domain.NewStatement(*account, transactions)
	s.LogDebug(ctx, "Statement produced",
		slog.String("account_id", accountID),
		slog.Int("credits", len(statement.CreditHistory)),
		slog.Int("debits", len(statement.DebitHistory)))
	return &statement, nil
}

func (s *ledgerService) StatementForOwner(ctx context.Context, ownerID string) (*domain.Statement, error) {
	account, err := s.accountRepo.FindAccountByOwnerID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve account for owner", slog.String("owner_id", ownerID))
		}
		return nil, err
	}
	return s.Statement(ctx, account.AccountID)
}
