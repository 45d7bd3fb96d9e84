package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/handlers"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	ledger   *MockLedgerService
	accounts *MockAccountService
	users    *MockUserService
	audit    *MockAuditService
	recorded chan domain.AuditLog
	writer   *middleware.AuditWriter
	adminID  string
	userID   string
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ledger = new(MockLedgerService)
	s.accounts = new(MockAccountService)
	s.users = new(MockUserService)
	s.audit = new(MockAuditService)
	s.adminID = uuid.NewString()
	s.userID = uuid.NewString()

	// Backend audit entries are written asynchronously for every request.
	recorded := make(chan domain.AuditLog, 64)
	s.recorded = recorded
	s.audit.On("Record", mock.Anything, mock.MatchedBy(func(e domain.AuditLog) bool {
		return e.Type == domain.AuditLogBackend
	})).Run(func(args mock.Arguments) {
		select {
		case recorded <- args.Get(1).(domain.AuditLog):
		default:
		}
	}).Return(nil).Maybe()

	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{Ledger: s.ledger, Account: s.accounts, User: s.users, Audit: s.audit}

	s.writer = middleware.NewAuditWriter(s.audit, middleware.DefaultAuditBuffer, slog.New(slog.DiscardHandler))
	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, services, handlers.Limiters{}, s.writer, nil)
}

func (s *HandlerTestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.NoError(s.writer.Close(ctx))
}

// generateTestToken creates a JWT for testing.
func (s *HandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	token, err := utils.GenerateJWT(userID, role, testJWTSecret, time.Hour, "bank-ledger-test")
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (s *HandlerTestSuite) do(method, url, token string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) asAdmin(method, url string, body any, headers ...string) *httptest.ResponseRecorder {
	return s.do(method, url, s.generateTestToken(s.adminID, domain.RoleAdmin), body, headers...)
}

func (s *HandlerTestSuite) asUser(method, url string, body any) *httptest.ResponseRecorder {
	return s.do(method, url, s.generateTestToken(s.userID, domain.RoleUser), body)
}

func (s *HandlerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var resp handlers.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func sampleResult(accountID string, txnType domain.TransactionType, amount, balance domain.Money) *domain.LedgerResult {
	return &domain.LedgerResult{
		Account: domain.Account{AccountID: accountID, AccountNumber: "ACCT-1", Balance: balance, Status: domain.AccountActive},
		Transaction: domain.Transaction{
			TransactionID: 7, AccountID: accountID, TransactionType: txnType, Amount: amount, BalanceAfter: balance,
		},
	}
}

// --- Test Cases ---

func (s *HandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())

	w = s.do(http.MethodGet, "/", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"service":"bank-ledger"`)
}

func (s *HandlerTestSuite) TestCredit_Success() {
	accountID := uuid.NewString()
	s.ledger.On("Credit", mock.Anything, domain.LedgerRequest{
		AccountID: accountID, Amount: 12550, IdempotencyKey: "key-1", RequestedBy: s.adminID,
	}).Return(sampleResult(accountID, domain.Credit, 12550, 12550), nil).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/transactions/credit",
		map[string]any{"accountID": accountID, "amount": "125.50"}, handlers.IdempotencyKeyHeader, "key-1")

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.LedgerTransactionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("125.50", resp.Account.Balance)
	s.Equal("125.50", resp.Transaction.Amount)
	s.Equal("CREDIT", resp.Transaction.TransactionType)
	s.False(resp.Replayed)
	s.ledger.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestCredit_AcceptsNumericAmount() {
	accountID := uuid.NewString()
	s.ledger.On("Credit", mock.Anything, mock.MatchedBy(func(r domain.LedgerRequest) bool {
		return r.Amount == 500 && r.IdempotencyKey == ""
	})).Return(sampleResult(accountID, domain.Credit, 500, 500), nil).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/transactions/credit", map[string]any{"accountID": accountID, "amount": 5})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestDebit_ReplayReturnsOK() {
	accountID := uuid.NewString()
	result := sampleResult(accountID, domain.Debit, 200, 300)
	result.Replayed = true
	s.ledger.On("Debit", mock.Anything, mock.Anything).Return(result, nil).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/transactions/debit",
		map[string]any{"accountID": accountID, "amount": "2"}, handlers.IdempotencyKeyHeader, "key-1")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.LedgerTransactionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Replayed)
}

func (s *HandlerTestSuite) TestPost_InvalidAmounts() {
	accountID := uuid.NewString()
	for _, amount := range []any{"0", "-5", "1.005", "abc", 0} {
		w := s.asAdmin(http.MethodPost, "/api/v1/transactions/debit", map[string]any{"accountID": accountID, "amount": amount})
		s.Equal(http.StatusBadRequest, w.Code, "amount %v", amount)
		if amount != "abc" {
			s.Equal(apperrors.ErrInvalidAmount.Error(), s.errorMessage(w), "amount %v", amount)
		}
	}
	s.ledger.AssertNotCalled(s.T(), "Debit", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestPost_MissingAccountID() {
	w := s.asAdmin(http.MethodPost, "/api/v1/transactions/credit", map[string]any{"amount": "1.00"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestPost_DomainErrorsMapToStatus() {
	accountID := uuid.NewString()
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: balance 1.00, requested 5.00", apperrors.ErrInsufficientFunds), http.StatusBadRequest},
		{fmt.Errorf("%w: account ACCT-1 is INACTIVE", apperrors.ErrAccountInactive), http.StatusBadRequest},
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrIdempotencyConflict, http.StatusConflict},
		{apperrors.NewStorageError("failed to commit transaction", assert.AnError), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		s.ledger.On("Debit", mock.Anything, mock.Anything).Return(nil, tc.err).Once()
		w := s.asAdmin(http.MethodPost, "/api/v1/transactions/debit", map[string]any{"accountID": accountID, "amount": "5"})
		s.Equal(tc.status, w.Code, tc.err.Error())
		if tc.status == http.StatusServiceUnavailable {
			s.NotContains(s.errorMessage(w), assert.AnError.Error())
			s.Equal("1", w.Header().Get("Retry-After"))
		} else {
			s.Equal(tc.err.Error(), s.errorMessage(w))
		}
	}
}

func (s *HandlerTestSuite) TestPost_RequiresAdmin() {
	w := s.asUser(http.MethodPost, "/api/v1/transactions/credit", map[string]any{"accountID": uuid.NewString(), "amount": "1"})
	s.Equal(http.StatusForbidden, w.Code)
	s.ledger.AssertNotCalled(s.T(), "Credit", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestPost_RequiresToken() {
	w := s.do(http.MethodPost, "/api/v1/transactions/credit", "", map[string]any{"accountID": uuid.NewString(), "amount": "1"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/transactions/credit", "not-a-jwt", map[string]any{"accountID": uuid.NewString(), "amount": "1"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestPost_RejectsLongIdempotencyKey() {
	long := make([]byte, 129)
	for i := range long {
		long[i] = 'k'
	}
	w := s.asAdmin(http.MethodPost, "/api/v1/transactions/credit",
		map[string]any{"accountID": uuid.NewString(), "amount": "1"}, handlers.IdempotencyKeyHeader, string(long))
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestMyStatement() {
	account := domain.Account{AccountID: uuid.NewString(), OwnerID: s.userID, AccountNumber: "ACCT-1", Balance: 30000, Status: domain.AccountActive}
	statement := domain.NewStatement(account, []domain.Transaction{
		{TransactionID: 1, TransactionType: domain.Credit, Amount: 50000, BalanceAfter: 50000},
		{TransactionID: 2, TransactionType: domain.Debit, Amount: 20000, BalanceAfter: 30000},
	})
	s.ledger.On("StatementForOwner", mock.Anything, s.userID).Return(&statement, nil).Once()

	w := s.asUser(http.MethodGet, "/api/v1/transactions/me", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.StatementResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("300.00", resp.Balance)
	s.Require().Len(resp.CreditHistory, 1)
	s.Require().Len(resp.DebitHistory, 1)
	s.Equal("500.00", resp.CreditHistory[0].Amount)
	s.Equal("200.00", resp.DebitHistory[0].Amount)
}

func (s *HandlerTestSuite) TestMyStatement_EmptyHistoriesAreArrays() {
	statement := domain.NewStatement(domain.Account{AccountID: uuid.NewString()}, nil)
	s.ledger.On("StatementForOwner", mock.Anything, s.userID).Return(&statement, nil).Once()

	w := s.asUser(http.MethodGet, "/api/v1/transactions/me", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"creditHistory":[]`)
	s.Contains(w.Body.String(), `"debitHistory":[]`)
}

func (s *HandlerTestSuite) TestAccountStatement_AdminOnly() {
	accountID := uuid.NewString()
	s.ledger.On("Statement", mock.Anything, accountID).Return(nil, apperrors.ErrNotFound).Once()

	s.Equal(http.StatusForbidden, s.asUser(http.MethodGet, "/api/v1/accounts/"+accountID+"/statement", nil).Code)
	s.Equal(http.StatusNotFound, s.asAdmin(http.MethodGet, "/api/v1/accounts/"+accountID+"/statement", nil).Code)
}

func (s *HandlerTestSuite) TestCreateCustomer() {
	req := dto.CreateCustomerRequest{Name: "Ada", Email: "ada@example.com"}
	created := &domain.AccountWithOwner{
		Account: domain.Account{AccountID: uuid.NewString(), AccountNumber: "ACCT-1", Status: domain.AccountActive},
		Owner:   domain.User{UserID: uuid.NewString(), Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser},
	}
	s.accounts.On("RegisterCustomer", mock.Anything, req.ToNewCustomer(), domain.AccountActive, s.adminID).Return(created, nil).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/accounts", req)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AccountWithOwnerResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("0.00", resp.Balance)
	s.Equal("ada@example.com", resp.Owner.Email)
}

func (s *HandlerTestSuite) TestCreateCustomer_Duplicate() {
	s.accounts.On("RegisterCustomer", mock.Anything, mock.Anything, domain.AccountActive, s.adminID).
		Return(nil, fmt.Errorf("%w: email is already registered", apperrors.ErrDuplicate)).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/accounts", dto.CreateCustomerRequest{Name: "Ada", Email: "ada@example.com"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestCreateCustomer_InvalidEmail() {
	w := s.asAdmin(http.MethodPost, "/api/v1/accounts", dto.CreateCustomerRequest{Name: "Ada", Email: "nope"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.accounts.AssertNotCalled(s.T(), "RegisterCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestRegister_PublicAndInactive() {
	req := dto.RegisterRequest{Name: "Bob", Email: "bob@example.com"}
	created := &domain.AccountWithOwner{
		Account: domain.Account{AccountID: uuid.NewString(), Status: domain.AccountInactive},
		Owner:   domain.User{UserID: uuid.NewString(), Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser},
	}
	s.accounts.On("RegisterCustomer", mock.Anything, req.ToNewCustomer(), domain.AccountInactive, "").Return(created, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/register", "", req)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AccountWithOwnerResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("INACTIVE", resp.Status)
}

func (s *HandlerTestSuite) TestGetMyAccount() {
	s.accounts.On("GetAccountForOwner", mock.Anything, s.userID).Return(&domain.AccountWithOwner{
		Account: domain.Account{AccountID: uuid.NewString(), OwnerID: s.userID, Balance: 1},
		Owner:   domain.User{UserID: s.userID},
	}, nil).Once()

	w := s.asUser(http.MethodGet, "/api/v1/accounts/me", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"balance":"0.01"`)
}

func (s *HandlerTestSuite) TestUpdateMyProfile() {
	s.users.On("UpdateProfile", mock.Anything, s.userID, mock.MatchedBy(func(u domain.ProfileUpdate) bool {
		return u.Address != nil && *u.Address == "1 Main St" && u.Name == nil && u.Mobile == nil
	}), s.userID).Return(&domain.User{UserID: s.userID, Address: "1 Main St"}, nil).Once()

	w := s.asUser(http.MethodPut, "/api/v1/accounts/me", map[string]any{"address": "1 Main St"})
	s.Equal(http.StatusOK, w.Code)
	s.users.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestListAccounts() {
	s.accounts.On("ListAccounts", mock.Anything, 5, 10).Return([]domain.AccountWithOwner{{}, {}}, nil).Once()

	w := s.asAdmin(http.MethodGet, "/api/v1/accounts?limit=5&offset=10", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Accounts, 2)
	s.Equal(5, resp.Limit)

	s.Equal(http.StatusBadRequest, s.asAdmin(http.MethodGet, "/api/v1/accounts?limit=1000", nil).Code)
	s.Equal(http.StatusForbidden, s.asUser(http.MethodGet, "/api/v1/accounts", nil).Code)
}

func (s *HandlerTestSuite) TestActivateAndDeactivate() {
	accountID := uuid.NewString()
	s.accounts.On("SetStatus", mock.Anything, accountID, domain.AccountActive, s.adminID).
		Return(&domain.Account{AccountID: accountID, Status: domain.AccountActive}, nil).Once()
	s.accounts.On("SetStatus", mock.Anything, accountID, domain.AccountInactive, s.adminID).
		Return(&domain.Account{AccountID: accountID, Status: domain.AccountInactive}, nil).Once()

	s.Equal(http.StatusOK, s.asAdmin(http.MethodPatch, "/api/v1/accounts/"+accountID+"/activate", nil).Code)
	w := s.asAdmin(http.MethodPatch, "/api/v1/accounts/"+accountID+"/deactivate", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"INACTIVE"`)
	s.accounts.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestDeprovision() {
	accountID := uuid.NewString()
	s.accounts.On("Deprovision", mock.Anything, accountID, s.adminID).Return(nil).Once()
	s.accounts.On("Deprovision", mock.Anything, "missing", s.adminID).Return(apperrors.ErrNotFound).Once()

	s.Equal(http.StatusNoContent, s.asAdmin(http.MethodDelete, "/api/v1/accounts/"+accountID, nil).Code)
	s.Equal(http.StatusNotFound, s.asAdmin(http.MethodDelete, "/api/v1/accounts/missing", nil).Code)
}

func (s *HandlerTestSuite) TestProvisionAccount_DefaultsToActive() {
	ownerID := uuid.NewString()
	s.accounts.On("Provision", mock.Anything, ownerID, domain.AccountActive, s.adminID).
		Return(&domain.Account{AccountID: uuid.NewString(), OwnerID: ownerID, Status: domain.AccountActive}, nil).Once()
	s.accounts.On("Provision", mock.Anything, ownerID, domain.AccountInactive, s.adminID).
		Return(nil, fmt.Errorf("%w: user already has an account", apperrors.ErrDuplicate)).Once()

	s.Equal(http.StatusCreated, s.asAdmin(http.MethodPost, "/api/v1/users/"+ownerID+"/account", nil).Code)
	s.Equal(http.StatusConflict, s.asAdmin(http.MethodPost, "/api/v1/users/"+ownerID+"/account", map[string]string{"status": "INACTIVE"}).Code)
	s.Equal(http.StatusBadRequest, s.asAdmin(http.MethodPost, "/api/v1/users/"+ownerID+"/account", map[string]string{"status": "FROZEN"}).Code)
}

func (s *HandlerTestSuite) TestAdminUpdateUser() {
	targetID := uuid.NewString()
	s.users.On("UpdateProfile", mock.Anything, targetID, mock.MatchedBy(func(u domain.ProfileUpdate) bool {
		return u.Mobile != nil && *u.Mobile == "555-1234"
	}), s.adminID).Return(&domain.User{UserID: targetID, Mobile: "555-1234"}, nil).Once()

	w := s.asAdmin(http.MethodPut, "/api/v1/users/"+targetID, map[string]any{"mobile": "555-1234"})
	s.Equal(http.StatusOK, w.Code)
	s.Equal(http.StatusForbidden, s.asUser(http.MethodPut, "/api/v1/users/"+targetID, map[string]any{"mobile": "1"}).Code)
}

func (s *HandlerTestSuite) TestCreateLog() {
	s.audit.On("Record", mock.Anything, mock.MatchedBy(func(e domain.AuditLog) bool {
		return e.Type == domain.AuditLogFrontend
	})).Return(nil).Once()

	w := s.asUser(http.MethodPost, "/api/v1/logs", map[string]any{"type": 1, "message": "button clicked", "haveError": false})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	s.audit.AssertCalled(s.T(), "Record", mock.Anything, mock.MatchedBy(func(e domain.AuditLog) bool {
		return e.Type == domain.AuditLogFrontend && e.Message == "button clicked" && e.UserID == s.userID
	}))

	w = s.asUser(http.MethodPost, "/api/v1/logs", map[string]any{"type": 3, "message": "x"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestAuditRecordsRequests() {
	s.ledger.On("StatementForOwner", mock.Anything, s.userID).Return(nil, apperrors.ErrNotFound).Once()

	s.asUser(http.MethodGet, "/api/v1/transactions/me", nil)

	select {
	case entry := <-s.recorded:
		s.True(entry.HaveError)
		s.Equal(s.userID, entry.UserID)
		s.Contains(entry.Message, "GET /api/v1/transactions/me (404) in ")
	case <-time.After(time.Second):
		s.Fail("audit entry was not recorded")
	}
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestRegisterRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	accounts := new(MockAccountService)
	accounts.On("RegisterCustomer", mock.Anything, mock.Anything, domain.AccountInactive, "").
		Return(&domain.AccountWithOwner{}, nil)
	audit := new(MockAuditService)
	audit.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()

	rate, err := limiter.NewRateFromFormatted("2-M")
	if err != nil {
		t.Fatal(err)
	}
	authLimiter := limiter.New(memory.NewStore(), rate)

	writer := middleware.NewAuditWriter(audit, 8, slog.New(slog.DiscardHandler))
	defer writer.Close(context.Background())

	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{JWTSecret: testJWTSecret, IsProduction: true},
		&portssvc.ServiceContainer{Account: accounts, Audit: audit}, handlers.Limiters{Auth: authLimiter}, writer, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		body := bytes.NewBufferString(`{"name":"Bob","email":"bob@example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusCreated || codes[1] != http.StatusCreated || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status codes %v", codes)
	}
}
