package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	auditWriteTimeout = 3 * time.Second

	// DefaultAuditBuffer is the number of audit entries held while the writer is busy.
	DefaultAuditBuffer = 1024
)

// AuditWriter persists audit entries from a bounded queue on a single goroutine.
// Entries that arrive while the queue is full are dropped.
type AuditWriter struct {
	svc     portssvc.AuditSvc
	logger  *slog.Logger
	entries chan domain.AuditLog
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAuditWriter starts the writer goroutine. Close must be called to stop it.
func NewAuditWriter(svc portssvc.AuditSvc, buffer int, logger *slog.Logger) *AuditWriter {
	if buffer < 1 {
		buffer = DefaultAuditBuffer
	}
	w := &AuditWriter{
		svc:     svc,
		logger:  logger,
		entries: make(chan domain.AuditLog, buffer),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *AuditWriter) run() {
	defer close(w.done)
	for entry := range w.entries {
		ctx, cancel := context.WithTimeout(WithLogger(context.Background(), w.logger), auditWriteTimeout)
		if err := w.svc.Record(ctx, entry); err != nil {
			w.logger.Warn("Failed to persist audit log", slog.String("error", err.Error()))
		}
		cancel()
	}
}

// Enqueue hands entry to the writer without blocking. It reports false when the
// entry was dropped because the queue is full or the writer is closed.
func (w *AuditWriter) Enqueue(entry domain.AuditLog) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		utils.AuditEntriesDroppedTotal.WithLabelValues("closed").Inc()
		return false
	}
	select {
	case w.entries <- entry:
		return true
	default:
		utils.AuditEntriesDroppedTotal.WithLabelValues("queue_full").Inc()
		return false
	}
}

// Close stops accepting entries and waits until the queued ones are written or ctx ends.
func (w *AuditWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.entries)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("audit writer did not drain: %w", ctx.Err())
	}
}

// AuditMiddleware records every request as "METHOD path (status) in Xms" once the
// response is written. Persisting the entry is best effort and does not delay the response.
func AuditMiddleware(w *AuditWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		entry := domain.AuditLog{
			Message:   fmt.Sprintf("%s %s (%d) in %dms", c.Request.Method, c.Request.URL.RequestURI(), status, time.Since(start).Milliseconds()),
			HaveError: status >= http.StatusBadRequest,
			Type:      domain.AuditLogBackend,
			CreatedAt: time.Now().UTC(),
		}
		if userID, ok := GetUserIDFromContext(c); ok {
			entry.UserID = userID
		}

		if !w.Enqueue(entry) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Audit entry dropped", slog.String("path", c.FullPath()))
		}
	}
}
