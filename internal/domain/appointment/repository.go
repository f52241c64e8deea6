package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// Repository defines appointment persistence operations
type Repository interface {
	Create(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, appt *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all appointments ordered by (date, time), ties broken by
	// insertion order
	List(ctx context.Context) ([]*Appointment, error)
	ListByStatus(ctx context.Context, status shared.AppointmentStatus) ([]*Appointment, error)

	// SumPriceByStatuses totals the price of appointments in any of the given
	// statuses; month, when non-empty ("2006-01"), restricts by calendar month
	SumPriceByStatuses(ctx context.Context, statuses []shared.AppointmentStatus, month string) (int64, error)
	CountByStatus(ctx context.Context, status shared.AppointmentStatus) (int64, error)

	// SetNotificationSent flips the notification flag after a confirmed delivery
	SetNotificationSent(ctx context.Context, id uuid.UUID, sent bool) error

	WithTx(tx pgx.Tx) Repository
}

// ErrAppointmentNotFound indicates a missing appointment
type ErrAppointmentNotFound struct {
	AppointmentID uuid.UUID
}

func (e ErrAppointmentNotFound) Error() string {
	return "appointment not found: " + e.AppointmentID.String()
}

// Is implements the errors.Is interface for ErrAppointmentNotFound
func (e ErrAppointmentNotFound) Is(target error) bool {
	t, ok := target.(ErrAppointmentNotFound)
	if !ok {
		return false
	}
	if t.AppointmentID == uuid.Nil {
		return true
	}
	return e.AppointmentID == t.AppointmentID
}

// ErrInvalidTransition indicates a status change the state machine forbids
type ErrInvalidTransition struct {
	From shared.AppointmentStatus
	To   shared.AppointmentStatus
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}
