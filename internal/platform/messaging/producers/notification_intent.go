package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/barbearia-digital/booking-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

type NotificationIntentProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// Creates a new notification intent producer and ensures topic exists
func NewNotificationIntentProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*NotificationIntentProducer, error) {
	if cfg.NotificationTopic == "" {
		return nil, fmt.Errorf("kafka notification topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for intent producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.NotificationTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure notification topic %s exists for intent producer: %w", cfg.NotificationTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.NotificationTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Using async for high throughput
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.NotificationTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.NotificationTopic, "count", len(messages))
			}
		},
	}

	return &NotificationIntentProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.NotificationTopic,
	}, nil
}

func (p *NotificationIntentProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for intent producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish message via intent producer",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s via intent producer: %w", p.topic, err)
	}

	p.logger.Debug("Published message via intent producer",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *NotificationIntentProducer) Close() error {
	p.logger.Info("Closing notification intent Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close intent kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
