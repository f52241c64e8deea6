package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/barbearia-digital/booking-ledger/internal/domain/appointment"
	"github.com/barbearia-digital/booking-ledger/internal/domain/catalog"
	"github.com/barbearia-digital/booking-ledger/internal/domain/finance"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// CreateAppointmentParams carries the client-supplied fields for a new booking
type CreateAppointmentParams struct {
	Date           string
	Time           string
	ClientName     string
	ClientPhone    string
	ClientWhatsApp string
	Service        catalog.ServiceKind
	CorrelationID  string
}

// AppointmentPatch is a raw field merge for the manual override path.
// Nil fields are left untouched. Status set through a patch bypasses the
// transition table, and a service change never re-derives price or duration.
type AppointmentPatch struct {
	Date           *string
	Time           *string
	ClientName     *string
	ClientPhone    *string
	ClientWhatsApp *string
	Service        *catalog.ServiceKind
	Status         *shared.AppointmentStatus
}

// BookingService defines the interface for appointment lifecycle operations
type BookingService interface {
	// CreateAppointment books a new pending appointment and projects its
	// finance entry. Price and duration are resolved from the catalog.
	CreateAppointment(ctx context.Context, params CreateAppointmentParams) (*appointment.Appointment, error)

	// GetAppointmentByID retrieves an appointment by its ID
	// Returns ErrAppointmentNotFound if the appointment doesn't exist
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)

	// ListAppointments retrieves appointments in chronological order.
	// An empty status lists everything.
	ListAppointments(ctx context.Context, status shared.AppointmentStatus) ([]*appointment.Appointment, error)

	// SetStatus applies a validated status transition, reconciles the ledger
	// and enqueues the matching notification intent
	SetStatus(ctx context.Context, id uuid.UUID, next shared.AppointmentStatus, correlationID string) (*appointment.Appointment, error)

	// Reschedule moves an appointment to a new date and time slot
	Reschedule(ctx context.Context, id uuid.UUID, date, timeOfDay, correlationID string) (*appointment.Appointment, error)

	// UpdateAppointment merges a raw field patch without transition validation
	UpdateAppointment(ctx context.Context, id uuid.UUID, patch AppointmentPatch) (*appointment.Appointment, error)

	// DeleteAppointment removes an appointment and its derived finance entry
	DeleteAppointment(ctx context.Context, id uuid.UUID) error

	// RequestNotification enqueues a manually triggered notification of any
	// kind, including reminders
	RequestNotification(ctx context.Context, id uuid.UUID, kind shared.NotificationKind, correlationID string) error
}

// LedgerProjector keeps the derived finance entries in step with appointments
type LedgerProjector interface {
	// Project creates the pending finance entry for a new appointment
	Project(ctx context.Context, appt *appointment.Appointment) error

	// Reconcile removes the entry when the appointment was cancelled and
	// leaves it untouched for every other status
	Reconcile(ctx context.Context, appt *appointment.Appointment) error

	// Remove deletes the entry for a deleted appointment. Idempotent.
	Remove(ctx context.Context, appointmentID uuid.UUID) error
}

// ReportService defines the interface for revenue reporting
type ReportService interface {
	// RevenueTotals computes revenue from appointments with a confirmed or
	// completed status, plus the count of still-pending bookings
	RevenueTotals(ctx context.Context) (*RevenueTotals, error)

	// ListFinanceEntries retrieves paginated finance entries, newest date first
	// Returns entries, total count, and any error
	ListFinanceEntries(ctx context.Context, page, perPage int) ([]*finance.Entry, int64, error)
}

// RevenueTotals is the revenue report payload. Amounts are in centavos.
type RevenueTotals struct {
	AllTime      int64 `json:"all_time"`
	CurrentMonth int64 `json:"current_month"`
	PendingCount int64 `json:"pending_count"`
}
