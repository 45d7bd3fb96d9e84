package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a non-positive, malformed or out of range monetary amount.
var ErrInvalidAmount = errors.New("amount must be a positive value with at most two decimal places")

// ErrInsufficientFunds indicates a debit larger than the account balance.
var ErrInsufficientFunds = errors.New("insufficient balance for debit transaction")

// ErrAccountInactive indicates a ledger operation attempted on an account that is not ACTIVE.
var ErrAccountInactive = errors.New("account is not active")

// ErrDuplicateAccountNumber indicates an account number collision. It is retried
// by the lifecycle service and never returned to callers.
var ErrDuplicateAccountNumber = errors.New("account number already exists")

// ErrIdempotencyConflict indicates an idempotency key reused for a different operation.
var ErrIdempotencyConflict = errors.New("idempotency key already used for a different operation")

// ErrStorage indicates a failure of the underlying durable store.
var ErrStorage = errors.New("storage failure")

// AppError carries an HTTP-equivalent code and a message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
	kind    error
}

// NewAppError creates an AppError with the given code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewStorageError wraps a driver error as a storage failure. errors.Is(err, ErrStorage) holds for the result.
func NewStorageError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err, kind: ErrStorage}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
