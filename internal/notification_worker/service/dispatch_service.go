package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/barbearia-digital/booking-ledger/internal/config"
	"github.com/barbearia-digital/booking-ledger/internal/domain/appointment"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
	"github.com/barbearia-digital/booking-ledger/internal/notification_worker/whatsapp"
)

type DispatchServiceImpl struct {
	apptRepo    appointment.Repository
	sender      whatsapp.Sender
	countryCode string
	logger      *slog.Logger
}

func NewDispatchService(
	logger *slog.Logger,
	cfg *config.WhatsAppConfig,
	apptRepo appointment.Repository,
	sender whatsapp.Sender,
) DispatchService {
	return &DispatchServiceImpl{
		apptRepo:    apptRepo,
		sender:      sender,
		countryCode: cfg.CountryCode,
		logger:      logger,
	}
}

// DispatchNotification renders the message for the intent and delivers it.
// On confirmed delivery the appointment's notification flag is set.
func (s *DispatchServiceImpl) DispatchNotification(ctx context.Context, intent *shared.NotificationIntent) error {
	logger := s.logger
	if intent.CorrelationID != "" {
		logger = s.logger.With("correlation_id", intent.CorrelationID)
	}

	logger.Info("Dispatching notification",
		"appointment_id", intent.AppointmentID.String(),
		"kind", intent.Kind,
	)

	if intent.ClientContact == "" {
		logger.Warn("Notification intent has no contact number, dropping",
			"appointment_id", intent.AppointmentID.String(),
			"kind", intent.Kind,
		)
		return nil
	}

	number := whatsapp.FormatNumber(intent.ClientContact, s.countryCode)
	text := whatsapp.RenderMessage(intent)

	if err := s.sender.Send(ctx, number, text); err != nil {
		logger.Error("Failed to send notification",
			"appointment_id", intent.AppointmentID.String(),
			"kind", intent.Kind,
			"error", err,
		)
		return fmt.Errorf("failed to send %s notification for appointment %s: %w", intent.Kind, intent.AppointmentID.String(), err)
	}

	// The message is already out. Retrying the whole dispatch over a stale
	// flag would send the client a duplicate, so flag errors are only logged.
	if err := s.apptRepo.SetNotificationSent(ctx, intent.AppointmentID, true); err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound{}) {
			logger.Warn("Appointment deleted before notification flag could be set",
				"appointment_id", intent.AppointmentID.String(),
			)
		} else {
			logger.Error("Failed to mark notification as sent",
				"appointment_id", intent.AppointmentID.String(),
				"error", err,
			)
		}
		return nil
	}

	logger.Info("Notification delivered",
		"appointment_id", intent.AppointmentID.String(),
		"kind", intent.Kind,
	)
	return nil
}
