package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/barbearia-digital/booking-ledger/internal/domain/catalog"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// Common errors
var (
	ErrEmptyClientName  = errors.New("client name cannot be empty")
	ErrEmptyClientPhone = errors.New("client phone cannot be empty")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimeSlot  = errors.New("time is not one of the bookable slots")
)

// Slots lists the bookable times of day. The shop opens at 09:00 and books
// in 45 minute steps until 21:00.
var Slots = []string{
	"09:00", "09:45", "10:30", "11:15", "12:00", "12:45", "13:30",
	"14:15", "15:00", "15:45", "16:30", "17:15", "18:00", "18:45",
	"19:30", "20:15", "21:00",
}

// IsBookableSlot reports whether t is one of the fixed slot values
func IsBookableSlot(t string) bool {
	for _, s := range Slots {
		if s == t {
			return true
		}
	}
	return false
}

// Appointment represents a booked service slot. Price and DurationMinutes are
// snapshots taken from the catalog at creation and are never recomputed, even
// if the appointment is later edited or the catalog changes.
type Appointment struct {
	ID               uuid.UUID                `json:"id"`
	Date             string                   `json:"date"` // YYYY-MM-DD
	Time             string                   `json:"time"` // HH:MM, one of Slots
	ClientName       string                   `json:"client_name"`
	ClientPhone      string                   `json:"client_phone"`
	ClientWhatsApp   string                   `json:"client_whatsapp,omitempty"`
	Service          catalog.ServiceKind      `json:"service"`
	DurationMinutes  int                      `json:"duration_minutes"`
	Price            int64                    `json:"price"` // Stored in centavos
	Status           shared.AppointmentStatus `json:"status"`
	NotificationSent bool                     `json:"notification_sent"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// New creates a pending appointment, resolving price and duration from the
// catalog. The WhatsApp contact defaults to the phone number when absent.
func New(cat *catalog.Catalog, date, timeOfDay, clientName, clientPhone, clientWhatsApp string, service catalog.ServiceKind) (*Appointment, error) {
	if clientName == "" {
		return nil, ErrEmptyClientName
	}
	if clientPhone == "" {
		return nil, ErrEmptyClientPhone
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	if !IsBookableSlot(timeOfDay) {
		return nil, ErrInvalidTimeSlot
	}

	spec, err := cat.Lookup(service)
	if err != nil {
		return nil, err
	}

	if clientWhatsApp == "" {
		clientWhatsApp = clientPhone
	}

	now := time.Now()
	return &Appointment{
		ID:               uuid.New(),
		Date:             date,
		Time:             timeOfDay,
		ClientName:       clientName,
		ClientPhone:      clientPhone,
		ClientWhatsApp:   clientWhatsApp,
		Service:          service,
		DurationMinutes:  spec.DurationMinutes,
		Price:            spec.Price,
		Status:           shared.AppointmentStatusPending,
		NotificationSent: false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// CanTransitionTo reports whether the status machine allows moving from the
// current status to next. Same-status re-sets are allowed as no-ops; terminal
// states admit no further transitions.
func (a *Appointment) CanTransitionTo(next shared.AppointmentStatus) bool {
	if next == a.Status {
		return true
	}
	switch a.Status {
	case shared.AppointmentStatusPending:
		return next == shared.AppointmentStatusConfirmed || next == shared.AppointmentStatusCancelled
	case shared.AppointmentStatusConfirmed:
		return next == shared.AppointmentStatusCompleted || next == shared.AppointmentStatusCancelled
	}
	return false
}

// SetStatus applies a validated status transition
func (a *Appointment) SetStatus(next shared.AppointmentStatus) error {
	if !a.CanTransitionTo(next) {
		return ErrInvalidTransition{From: a.Status, To: next}
	}
	a.Status = next
	a.UpdatedAt = time.Now()
	return nil
}

// Reschedule moves the appointment to a new date and time slot
func (a *Appointment) Reschedule(date, timeOfDay string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	if !IsBookableSlot(timeOfDay) {
		return ErrInvalidTimeSlot
	}
	a.Date = date
	a.Time = timeOfDay
	a.UpdatedAt = time.Now()
	return nil
}

// ContactForNotifications returns the channel outbound messages should use
func (a *Appointment) ContactForNotifications() string {
	if a.ClientWhatsApp != "" {
		return a.ClientWhatsApp
	}
	return a.ClientPhone
}
