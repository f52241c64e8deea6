package finance

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages finance entry persistence
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*Entry, error)

	// Delete removes the entry for the given appointment. Deleting an entry
	// that does not exist is not an error.
	Delete(ctx context.Context, appointmentID uuid.UUID) error

	// List returns entries sorted by date, most recent first
	List(ctx context.Context, limit, offset int) ([]*Entry, error)
	Count(ctx context.Context) (int64, error)
}

// ErrEntryNotFound indicates a missing finance entry
type ErrEntryNotFound struct {
	AppointmentID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "finance entry not found: " + e.AppointmentID.String()
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.AppointmentID == uuid.Nil {
		return true
	}
	return e.AppointmentID == t.AppointmentID
}

// ErrDuplicateEntry indicates appointment uniqueness violation
type ErrDuplicateEntry struct {
	AppointmentID uuid.UUID
}

func (e ErrDuplicateEntry) Error() string {
	return "duplicate finance entry: " + e.AppointmentID.String()
}

// Is implements the errors.Is interface for ErrDuplicateEntry
func (e ErrDuplicateEntry) Is(target error) bool {
	t, ok := target.(ErrDuplicateEntry)
	if !ok {
		return false
	}
	if t.AppointmentID == uuid.Nil {
		return true
	}
	return e.AppointmentID == t.AppointmentID
}
