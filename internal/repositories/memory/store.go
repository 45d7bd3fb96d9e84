// Package memory provides a process-local implementation of every repository port.
// It backs the "memory" storage driver and the service property tests.
package memory

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
)

// Store keeps users, accounts, transactions, audit logs and outbox messages in memory.
//
// Lock order is s.mu before accountEntry.mu. A ledger unit holds only its entry's
// mutex, so units on different accounts never contend.
type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	emails   map[string]string // email -> user id
	accounts map[string]*accountEntry
	owners   map[string]string // owner id -> account id
	numbers  map[string]string // account number -> account id

	nextTxnID atomic.Int64
	clock     func() time.Time

	logMu     sync.Mutex
	auditLogs []domain.AuditLog

	outboxMu sync.Mutex
	outbox   []domain.OutboxMessage
}

type accountEntry struct {
	mu           sync.Mutex
	account      domain.Account
	transactions []domain.Transaction
	idempotency  map[string]int // key -> index into transactions
	removed      bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for transaction timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// NewStore creates an empty store.
func NewStore(options ...Option) *Store {
	s := &Store{
		users:    make(map[string]domain.User),
		emails:   make(map[string]string),
		accounts: make(map[string]*accountEntry),
		owners:   make(map[string]string),
		numbers:  make(map[string]string),
		clock:    time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// NewRepositoryProvider exposes a single Store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: s,
		UserRepo:    s,
		LedgerRepo:  s,
		AuditRepo:   s,
		OutboxRepo:  s,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade    = (*Store)(nil)
	_ portsrepo.LedgerRepository        = (*Store)(nil)
	_ portsrepo.AuditLogRepository      = (*Store)(nil)
	_ portsrepo.OutboxRepository        = (*Store)(nil)
)

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

// entry returns the live entry for accountID. Callers must hold s.mu.
func (s *Store) entry(accountID string) *accountEntry {
	e, ok := s.accounts[accountID]
	if !ok {
		return nil
	}
	return e
}
