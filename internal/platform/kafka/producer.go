package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Message is a keyed event bound for a topic.
type Message struct {
	Key   string
	Value []byte
	// Headers are attached as Kafka record headers.
	Headers map[string]string
}

// Producer writes messages to a broker.
type Producer interface {
	Produce(ctx context.Context, topic string, messages ...Message) error
	Close() error
}

type KafkaProducer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewProducer creates a producer for the given brokers. Messages sharing a key land on the same
// partition, so events of one account keep their order.
func NewProducer(brokers []string, logger *slog.Logger) *KafkaProducer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error(fmt.Sprintf(msg, args...), slog.String("component", "kafka_writer"))
		}),
	}
	return &KafkaProducer{writer: writer, logger: logger}
}

var _ Producer = (*KafkaProducer)(nil)

func (p *KafkaProducer) Produce(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	records := make([]kafkago.Message, 0, len(messages))
	for _, m := range messages {
		record := kafkago.Message{Topic: topic, Key: []byte(m.Key), Value: m.Value}
		for k, v := range m.Headers {
			record.Headers = append(record.Headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
		records = append(records, record)
	}

	if err := p.writer.WriteMessages(ctx, records...); err != nil {
		p.logger.Error("Failed to produce messages to Kafka topic",
			slog.String("topic", topic),
			slog.Int("count", len(records)),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to produce messages: %w", err)
	}
	p.logger.Debug("Produced messages to topic", slog.String("topic", topic), slog.Int("count", len(records)))
	return nil
}

func (p *KafkaProducer) Close() error {
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka producer", slog.String("error", err.Error()))
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	p.logger.Info("Kafka producer closed")
	return nil
}
