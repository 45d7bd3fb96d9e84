package generator

import (
	"crypto/rand"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultPrefix is prepended to every generated account number.
const DefaultPrefix = "ACCT"

// AccountNumberGenerator produces unique, lexically time-ordered account numbers
// of the form <PREFIX>-<ULID>. It is safe for concurrent use.
type AccountNumberGenerator struct {
	mu      sync.Mutex
	prefix  string
	entropy io.Reader
	now     func() time.Time
}

// NewAccountNumberGenerator creates a generator backed by a monotonic ULID source.
func NewAccountNumberGenerator(prefix string) *AccountNumberGenerator {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &AccountNumberGenerator{
		prefix:  strings.ToUpper(prefix),
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Generate returns a new account number.
func (g *AccountNumberGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	if err != nil {
		return "", err
	}
	return g.prefix + "-" + id.String(), nil
}

// Prefix returns the configured prefix.
func (g *AccountNumberGenerator) Prefix() string {
	return g.prefix
}
