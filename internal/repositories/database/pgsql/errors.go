package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
	pgNumericOutOfRange   = "22003"
	pgInvalidText         = "22P02"

	constraintAccountNumber  = "uq_accounts_account_number"
	constraintAccountOwner   = "uq_accounts_owner"
	constraintUserEmail      = "uq_users_email"
	constraintIdempotencyKey = "uq_transactions_idempotency_key"
	constraintBalance        = "chk_accounts_balance_non_negative"
	constraintBalanceAfter   = "chk_transactions_balance_after_non_negative"
)

// mapError translates driver errors into apperrors. Anything unrecognised becomes a storage error.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintAccountNumber:
				return apperrors.ErrDuplicateAccountNumber
			case constraintAccountOwner:
				return fmt.Errorf("%w: user already has an account", apperrors.ErrDuplicate)
			case constraintUserEmail:
				return fmt.Errorf("%w: email is already registered", apperrors.ErrDuplicate)
			case constraintIdempotencyKey:
				return apperrors.ErrIdempotencyConflict
			default:
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
			}
		case pgCheckViolation:
			if pgErr.ConstraintName == constraintBalance || pgErr.ConstraintName == constraintBalanceAfter {
				return apperrors.ErrInsufficientFunds
			}
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrNotFound, pgErr.ConstraintName)
		case pgNumericOutOfRange:
			return apperrors.ErrInvalidAmount
		case pgInvalidText:
			// malformed uuid in a lookup, nothing can match it
			return apperrors.ErrNotFound
		}
	}
	return apperrors.NewStorageError(msg, err)
}
