package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
	"github.com/barbearia-digital/booking-ledger/internal/notification_worker/service"
	"github.com/barbearia-digital/booking-ledger/internal/platform/messaging/producers"
)

// NotificationEventHandler handles incoming notification intent messages from Kafka
type NotificationEventHandler struct {
	dispatchService service.DispatchService
	producer        producers.DeadLetterPublisher
	logger          *slog.Logger
}

// NewNotificationEventHandler creates a new handler
func NewNotificationEventHandler(
	logger *slog.Logger,
	dispatchService service.DispatchService,
	producer producers.DeadLetterPublisher,
) *NotificationEventHandler {
	return &NotificationEventHandler{
		dispatchService: dispatchService,
		producer:        producer,
		logger:          logger,
	}
}

// HandleMessage processes Kafka messages
func (h *NotificationEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var intent shared.NotificationIntent
	if err := json.Unmarshal(value, &intent); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal notification intent from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
				// Return original error if DLQ fails
			} else {
				h.logger.Info("Successfully published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	// Add correlation ID to logger
	logger := h.logger
	if intent.CorrelationID != "" {
		logger = h.logger.With("correlation_id", intent.CorrelationID)
	}

	logger.Info("Received notification intent for dispatch",
		"appointment_id", intent.AppointmentID.String(),
		"kind", intent.Kind,
		"client_name", intent.ClientName,
	)

	if err := h.dispatchService.DispatchNotification(ctx, &intent); err != nil {
		logger.Error("Failed to dispatch notification",
			"appointment_id", intent.AppointmentID.String(),
			"kind", intent.Kind,
			"error", err,
		)
		return fmt.Errorf("dispatching %s notification for appointment %s failed: %w", intent.Kind, intent.AppointmentID.String(), err)
	}

	logger.Info("Successfully dispatched notification", "appointment_id", intent.AppointmentID.String(), "kind", intent.Kind)
	return nil // Success, commit offset
}
