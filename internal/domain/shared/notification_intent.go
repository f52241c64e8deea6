package shared

import (
	"time"

	"github.com/google/uuid"
)

// NotificationIntent defines a Kafka message asking the dispatcher to send
// one outbound message for an appointment. It carries a denormalized snapshot
// so the dispatcher can render the message without a read back to the store.
type NotificationIntent struct {
	AppointmentID uuid.UUID        `json:"appointment_id"`
	Kind          NotificationKind `json:"kind"`
	ClientName    string           `json:"client_name"`
	ClientContact string           `json:"client_contact"`
	Date          string           `json:"date"` // YYYY-MM-DD
	Time          string           `json:"time"` // HH:MM
	Service       string           `json:"service"`
	Price         int64            `json:"price"` // Stored in centavos
	CorrelationID string           `json:"correlation_id,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}
