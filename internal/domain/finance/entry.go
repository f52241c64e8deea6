package finance

import (
	"time"

	"github.com/google/uuid"

	"github.com/barbearia-digital/booking-ledger/internal/domain/appointment"
	"github.com/barbearia-digital/booking-ledger/internal/domain/catalog"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// Entry represents the financial record derived from one appointment.
// It carries a denormalized snapshot so the finance view can render without
// joining back to the appointment store. Entries live exactly as long as
// their appointment: cancellation or deletion removes them.
type Entry struct {
	AppointmentID uuid.UUID            `json:"appointment_id" bson:"appointment_id"`
	Date          string               `json:"date" bson:"date"` // YYYY-MM-DD
	ClientName    string               `json:"client_name" bson:"client_name"`
	Service       catalog.ServiceKind  `json:"service" bson:"service"`
	Price         int64                `json:"price" bson:"price"` // Stored in centavos
	Status        shared.PaymentStatus `json:"status" bson:"status"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
}

// NewEntry derives a pending entry from an appointment
func NewEntry(appt *appointment.Appointment) *Entry {
	return &Entry{
		AppointmentID: appt.ID,
		Date:          appt.Date,
		ClientName:    appt.ClientName,
		Service:       appt.Service,
		Price:         appt.Price,
		Status:        shared.PaymentStatusPending,
		CreatedAt:     appt.CreatedAt,
	}
}
