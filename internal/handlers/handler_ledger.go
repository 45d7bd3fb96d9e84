package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader carries the optional key that makes a credit or debit safe to retry.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// ledgerHandler handles HTTP requests related to balances and transactions.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	posthogClient *utils.PosthogClientWrapper
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, posthogClient *utils.PosthogClientWrapper) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, posthogClient: posthogClient}
}

// registerLedgerRoutes registers the transaction routes. Posting is admin only.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newLedgerHandler(ledgerService, posthogClient)

	txns := rg.Group("/transactions")
	{
		txns.GET("/me", h.getMyStatement)
		txns.POST("/credit", middleware.RequireRole(domain.RoleAdmin), h.credit)
		txns.POST("/debit", middleware.RequireRole(domain.RoleAdmin), h.debit)
	}
	rg.GET("/accounts/:accountID/statement", middleware.RequireRole(domain.RoleAdmin), h.getStatement)
}

// credit godoc
// @Summary Credit an account
// @Description Adds the amount to the account balance and records a CREDIT transaction. Admin only.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Key making retries safe; replays return the original transaction"
// @Param   transaction body dto.LedgerTransactionRequest true "Account and amount"
// @Success 201 {object} dto.LedgerTransactionResponse
// @Success 200 {object} dto.LedgerTransactionResponse "Replay of an earlier request with the same key"
// @Failure 400 {object} ErrorResponse "Invalid amount or inactive account"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 409 {object} ErrorResponse "Idempotency key reused for a different operation"
// @Failure 503 {object} ErrorResponse "Storage unavailable, retry"
// @Security BearerAuth
// @Router /transactions/credit [post]
func (h *ledgerHandler) credit(c *gin.Context) {
	h.post(c, domain.Credit)
}

// debit godoc
// @Summary Debit an account
// @Description Subtracts the amount from the account balance and records a DEBIT transaction. Admin only.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Key making retries safe; replays return the original transaction"
// @Param   transaction body dto.LedgerTransactionRequest true "Account and amount"
// @Success 201 {object} dto.LedgerTransactionResponse
// @Success 200 {object} dto.LedgerTransactionResponse "Replay of an earlier request with the same key"
// @Failure 400 {object} ErrorResponse "Invalid amount, inactive account or insufficient funds"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 409 {object} ErrorResponse "Idempotency key reused for a different operation"
// @Failure 503 {object} ErrorResponse "Storage unavailable, retry"
// @Security BearerAuth
// @Router /transactions/debit [post]
func (h *ledgerHandler) debit(c *gin.Context) {
	h.post(c, domain.Debit)
}

func (h *ledgerHandler) post(c *gin.Context, txnType domain.TransactionType) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.LedgerTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLength {
		respondWithError(c, fmt.Errorf("%w: %s header must be at most %d characters", apperrors.ErrValidation, IdempotencyKeyHeader, maxIdempotencyKeyLength), "")
		return
	}

	ledgerReq, err := req.ToLedgerRequest(key, actorID)
	if err != nil {
		respondWithError(c, err, "")
		return
	}

	var result *domain.LedgerResult
	if txnType == domain.Credit {
		result, err = h.ledgerService.Credit(c.Request.Context(), ledgerReq)
	} else {
		result, err = h.ledgerService.Debit(c.Request.Context(), ledgerReq)
	}
	if err != nil {
		respondWithError(c, err, "Failed to post "+strings.ToLower(string(txnType)))
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	} else {
		middleware.PosthogEvent(c, h.posthogClient, "ledger_"+strings.ToLower(string(txnType)), map[string]any{
			"account_id":     result.Account.AccountID,
			"amount_minor":   int64(result.Transaction.Amount),
			"transaction_id": result.Transaction.TransactionID,
		})
	}

	logger.Info("Ledger transaction posted",
		slog.String("account_id", result.Account.AccountID),
		slog.Int64("transaction_id", result.Transaction.TransactionID),
		slog.Bool("replayed", result.Replayed))
	c.JSON(status, dto.ToLedgerTransactionResponse(result))
}

// getMyStatement godoc
// @Summary Get the caller's statement
// @Description Returns the balance and the credit and debit histories of the caller's own account, oldest first.
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.StatementResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Caller has no account"
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/me [get]
func (h *ledgerHandler) getMyStatement(c *gin.Context) {
	userID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	statement, err := h.ledgerService.StatementForOwner(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to load statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// getStatement godoc
// @Summary Get an account statement
// @Description Returns the balance and the credit and debit histories of any account. Admin only.
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.StatementResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/statement [get]
func (h *ledgerHandler) getStatement(c *gin.Context) {
	statement, err := h.ledgerService.Statement(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondWithError(c, err, "Failed to load statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}
