package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/barbearia-digital/booking-ledger/internal/domain/appointment"
	"github.com/barbearia-digital/booking-ledger/internal/domain/catalog"
	"github.com/barbearia-digital/booking-ledger/internal/domain/outbox"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// ErrNoNotificationContact indicates the appointment has no WhatsApp contact
// on file to deliver a message to
var ErrNoNotificationContact = errors.New("appointment has no notification contact on file")

// BookingServiceImpl implements the BookingService interface
type BookingServiceImpl struct {
	catalog    *catalog.Catalog
	apptRepo   appointment.Repository
	projector  LedgerProjector
	outboxRepo outbox.Repository
	logger     *slog.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	logger *slog.Logger,
	cat *catalog.Catalog,
	apptRepo appointment.Repository,
	projector LedgerProjector,
	outboxRepo outbox.Repository,
) BookingService {
	return &BookingServiceImpl{
		catalog:    cat,
		apptRepo:   apptRepo,
		projector:  projector,
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

// CreateAppointment books a new pending appointment. Validation happens before
// anything is written; the finance entry is projected right after the row is
// stored so each live appointment carries exactly one entry.
func (s *BookingServiceImpl) CreateAppointment(ctx context.Context, params CreateAppointmentParams) (*appointment.Appointment, error) {
	appt, err := appointment.New(
		s.catalog,
		params.Date,
		params.Time,
		params.ClientName,
		params.ClientPhone,
		params.ClientWhatsApp,
		params.Service,
	)
	if err != nil {
		return nil, err
	}

	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}

	if err := s.projector.Project(ctx, appt); err != nil {
		// Compensate so a half-booked appointment never lingers without
		// its finance entry.
		if delErr := s.apptRepo.Delete(ctx, appt.ID); delErr != nil {
			s.logger.Error("Failed to roll back appointment after projection failure",
				"appointment_id", appt.ID.String(),
				"error", delErr,
			)
		}
		return nil, err
	}

	s.logger.Info("Appointment created",
		"appointment_id", appt.ID.String(),
		"date", appt.Date,
		"time", appt.Time,
		"service", string(appt.Service),
		"price", appt.Price,
	)

	return appt, nil
}

// GetAppointmentByID retrieves an appointment by its ID
func (s *BookingServiceImpl) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return s.apptRepo.GetByID(ctx, id)
}

// ListAppointments retrieves appointments in chronological order, optionally
// filtered by status
func (s *BookingServiceImpl) ListAppointments(ctx context.Context, status shared.AppointmentStatus) ([]*appointment.Appointment, error) {
	if status == "" {
		return s.apptRepo.List(ctx)
	}
	return s.apptRepo.ListByStatus(ctx, status)
}

// SetStatus applies a validated status transition. Re-setting the current
// status is a no-op that triggers neither a write nor a notification. On a
// real transition the ledger is reconciled and an intent is enqueued when the
// new status warrants one.
func (s *BookingServiceImpl) SetStatus(ctx context.Context, id uuid.UUID, next shared.AppointmentStatus, correlationID string) (*appointment.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.Status == next {
		return appt, nil
	}

	if err := appt.SetStatus(next); err != nil {
		return nil, err
	}

	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}

	if err := s.projector.Reconcile(ctx, appt); err != nil {
		return nil, err
	}

	switch next {
	case shared.AppointmentStatusConfirmed:
		s.enqueueIntent(ctx, appt, shared.NotificationKindConfirmation, correlationID)
	case shared.AppointmentStatusCancelled:
		s.enqueueIntent(ctx, appt, shared.NotificationKindCancellation, correlationID)
	}

	s.logger.Info("Appointment status changed",
		"appointment_id", appt.ID.String(),
		"status", string(next),
	)

	return appt, nil
}

// Reschedule moves an appointment to a new slot. Confirmed appointments get a
// reschedule notification so the client learns about the new time.
func (s *BookingServiceImpl) Reschedule(ctx context.Context, id uuid.UUID, date, timeOfDay, correlationID string) (*appointment.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := appt.Reschedule(date, timeOfDay); err != nil {
		return nil, err
	}

	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}

	if appt.Status == shared.AppointmentStatusConfirmed {
		s.enqueueIntent(ctx, appt, shared.NotificationKindReschedule, correlationID)
	}

	return appt, nil
}

// UpdateAppointment merges a raw field patch. This is the manual override
// path: status written here skips the transition table, and changing the
// service keeps the price and duration frozen at creation.
func (s *BookingServiceImpl) UpdateAppointment(ctx context.Context, id uuid.UUID, patch AppointmentPatch) (*appointment.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		if _, err := time.Parse("2006-01-02", *patch.Date); err != nil {
			return nil, appointment.ErrInvalidDate
		}
		appt.Date = *patch.Date
	}
	if patch.Time != nil {
		if !appointment.IsBookableSlot(*patch.Time) {
			return nil, appointment.ErrInvalidTimeSlot
		}
		appt.Time = *patch.Time
	}
	if patch.ClientName != nil {
		if *patch.ClientName == "" {
			return nil, appointment.ErrEmptyClientName
		}
		appt.ClientName = *patch.ClientName
	}
	if patch.ClientPhone != nil {
		if *patch.ClientPhone == "" {
			return nil, appointment.ErrEmptyClientPhone
		}
		appt.ClientPhone = *patch.ClientPhone
	}
	if patch.ClientWhatsApp != nil {
		appt.ClientWhatsApp = *patch.ClientWhatsApp
	}
	if patch.Service != nil {
		if _, err := s.catalog.Lookup(*patch.Service); err != nil {
			return nil, err
		}
		appt.Service = *patch.Service
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, appointment.ErrInvalidTransition{From: appt.Status, To: *patch.Status}
		}
		appt.Status = *patch.Status
	}
	appt.UpdatedAt = time.Now()

	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}

	// A patch that forces the status to cancelled still drops the entry.
	if err := s.projector.Reconcile(ctx, appt); err != nil {
		return nil, err
	}

	return appt, nil
}

// DeleteAppointment removes an appointment and its finance entry.
// No notification goes out for deletions.
func (s *BookingServiceImpl) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if err := s.apptRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.projector.Remove(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Appointment deleted", "appointment_id", id.String())
	return nil
}

// RequestNotification enqueues a manually triggered notification, including
// reminders. Unlike lifecycle notifications the enqueue failure surfaces to
// the caller because sending was the whole point of the request.
func (s *BookingServiceImpl) RequestNotification(ctx context.Context, id uuid.UUID, kind shared.NotificationKind, correlationID string) error {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if appt.ContactForNotifications() == "" {
		return ErrNoNotificationContact
	}

	return s.enqueue(ctx, appt, kind, correlationID)
}

// enqueueIntent records a notification intent on a best-effort basis.
// Lifecycle operations never fail because a notification could not be
// queued; the error is logged and swallowed.
func (s *BookingServiceImpl) enqueueIntent(ctx context.Context, appt *appointment.Appointment, kind shared.NotificationKind, correlationID string) {
	if appt.ContactForNotifications() == "" {
		s.logger.Warn("Skipping notification, no contact on file",
			"appointment_id", appt.ID.String(),
			"kind", string(kind),
		)
		return
	}

	if err := s.enqueue(ctx, appt, kind, correlationID); err != nil {
		s.logger.Error("Failed to enqueue notification intent",
			"appointment_id", appt.ID.String(),
			"kind", string(kind),
			"error", err,
		)
	}
}

func (s *BookingServiceImpl) enqueue(ctx context.Context, appt *appointment.Appointment, kind shared.NotificationKind, correlationID string) error {
	intent := &shared.NotificationIntent{
		AppointmentID: appt.ID,
		Kind:          kind,
		ClientName:    appt.ClientName,
		ClientContact: appt.ContactForNotifications(),
		Date:          appt.Date,
		Time:          appt.Time,
		Service:       string(appt.Service),
		Price:         appt.Price,
		CorrelationID: correlationID,
		Timestamp:     time.Now(),
	}

	message, err := outbox.NewMessage(intent)
	if err != nil {
		return err
	}

	return s.outboxRepo.Create(ctx, message)
}
