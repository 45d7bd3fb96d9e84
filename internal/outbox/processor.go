package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/platform/kafka"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
)

const defaultPollTimeout = 10 * time.Second

// Processor relays pending outbox messages to the broker. Delivery is at least once:
// a crash between producing and marking re-sends the batch on the next poll.
type Processor struct {
	repo         portsrepo.OutboxRepository
	producer     kafka.Producer
	topic        string
	pollInterval time.Duration
	pollTimeout  time.Duration
	batchSize    int
	logger       *slog.Logger
	clock        func() time.Time
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithPollTimeout bounds a single poll-produce-mark cycle.
func WithPollTimeout(d time.Duration) ProcessorOption {
	return func(p *Processor) {
		p.pollTimeout = d
	}
}

// WithClock overrides the clock used for sent_at.
func WithClock(clock func() time.Time) ProcessorOption {
	return func(p *Processor) {
		p.clock = clock
	}
}

func NewProcessor(repo portsrepo.OutboxRepository, producer kafka.Producer, topic string, pollInterval time.Duration, batchSize int, logger *slog.Logger, options ...ProcessorOption) *Processor {
	p := &Processor{
		repo:         repo,
		producer:     producer,
		topic:        topic,
		pollInterval: pollInterval,
		pollTimeout:  defaultPollTimeout,
		batchSize:    batchSize,
		logger:       logger.With(slog.String("component", "outbox_processor")),
		clock:        func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Run polls until ctx is cancelled. A full batch is followed immediately by another poll.
func (p *Processor) Run(ctx context.Context) {
	p.logger.Info("Starting outbox processor",
		slog.String("topic", p.topic),
		slog.Duration("poll_interval", p.pollInterval),
		slog.Int("batch_size", p.batchSize))

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		for {
			n, err := p.ProcessOnce(ctx)
			if err != nil {
				if ctx.Err() == nil {
					p.logger.Error("Outbox cycle failed", slog.String("error", err.Error()))
				}
				break
			}
			if n < p.batchSize {
				break
			}
		}

		select {
		case <-ctx.Done():
			p.logger.Info("Outbox processor stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessOnce publishes one batch of pending messages and returns how many were sent.
func (p *Processor) ProcessOnce(ctx context.Context) (int, error) {
	cycleCtx, cancel := context.WithTimeout(ctx, p.pollTimeout)
	defer cancel()

	messages, err := p.repo.FetchPendingMessages(cycleCtx, p.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch pending messages: %w", err)
	}
	if len(messages) == 0 {
		p.logger.Debug("No pending outbox messages found")
		return 0, nil
	}

	records := make([]kafka.Message, 0, len(messages))
	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		records = append(records, toRecord(msg))
		ids = append(ids, msg.MessageID)
	}

	if err := p.producer.Produce(cycleCtx, p.topic, records...); err != nil {
		utils.OutboxPublishedTotal.WithLabelValues("failed").Add(float64(len(records)))
		return 0, err
	}
	utils.OutboxPublishedTotal.WithLabelValues("sent").Add(float64(len(records)))

	if err := p.repo.MarkMessagesSent(cycleCtx, ids, p.clock()); err != nil {
		return 0, fmt.Errorf("failed to mark %d messages sent: %w", len(ids), err)
	}

	p.logger.Info("Published outbox messages", slog.Int("count", len(ids)))
	return len(ids), nil
}

func toRecord(msg domain.OutboxMessage) kafka.Message {
	return kafka.Message{
		Key:   msg.AggregateID,
		Value: msg.Payload,
		Headers: map[string]string{
			"event_type": msg.EventType,
			"message_id": msg.MessageID,
		},
	}
}
