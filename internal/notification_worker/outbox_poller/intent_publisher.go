package outbox_poller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/barbearia-digital/booking-ledger/internal/domain/outbox"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
	"github.com/barbearia-digital/booking-ledger/internal/platform/messaging/producers"
)

// IntentPublisher publishes outbox messages to the notification topic
type IntentPublisher interface {
	PublishIntent(ctx context.Context, message *outbox.Message) error
}

// IntentPublisherImpl implements IntentPublisher
type IntentPublisherImpl struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewIntentPublisher creates a new publisher
func NewIntentPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) IntentPublisher {
	return &IntentPublisherImpl{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishIntent pushes one outbox message onto the notification topic and
// marks it processed.
func (p *IntentPublisherImpl) PublishIntent(ctx context.Context, message *outbox.Message) error {
	intent, err := message.GetIntent()
	if err != nil {
		p.logger.Error("Failed to unmarshal notification intent from outbox payload",
			"outbox_id", message.ID, "appointment_id", message.AppointmentID, "error", err,
		)
		// A payload that does not parse will never parse; retrying is pointless
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	// Add correlation ID to logger
	logger := p.logger
	if intent.CorrelationID != "" {
		logger = p.logger.With("correlation_id", intent.CorrelationID)
	}

	logger.Info("Attempting to publish outbox message to notification topic",
		"outbox_id", message.ID, "appointment_id", message.AppointmentID, "kind", message.Kind,
	)

	// Keyed by appointment so intents for one appointment stay ordered
	if err := p.producer.Publish(ctx, message.AppointmentID.String(), intent); err != nil {
		logger.Error("Failed to publish notification intent to Kafka",
			"outbox_id", message.ID, "appointment_id", message.AppointmentID, "error", err,
		)
		return fmt.Errorf("failed to publish intent for outbox %d: %w", message.ID, err)
	}

	// Mark outbox message as processed
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "appointment_id", message.AppointmentID, "error", err,
		)
		return fmt.Errorf("intent for %s published, but failed to mark outbox %d as PROCESSED: %w", message.AppointmentID, message.ID, err)
	}

	logger.Info("Outbox message successfully published and marked as PROCESSED", "outbox_id", message.ID, "appointment_id", message.AppointmentID)
	return nil
}
