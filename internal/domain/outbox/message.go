package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// Message stores a notification intent for reliable hand-off to the message
// broker. The booking API writes one row per notify-worthy transition; the
// poller publishes pending rows and marks them processed.
type Message struct {
	ID            int64                   `json:"id"`
	AppointmentID uuid.UUID               `json:"appointment_id"`
	Kind          shared.NotificationKind `json:"kind"`
	Payload       json.RawMessage         `json:"payload"`
	Status        shared.OutboxStatus     `json:"status"`
	Attempts      int                     `json:"attempts"`
	CreatedAt     time.Time               `json:"created_at"`
	LastAttemptAt *time.Time              `json:"last_attempt_at,omitempty"`
}

// NewMessage wraps a notification intent into a pending outbox message
func NewMessage(intent *shared.NotificationIntent) (*Message, error) {
	payload, err := json.Marshal(intent)
	if err != nil {
		return nil, err
	}

	return &Message{
		AppointmentID: intent.AppointmentID,
		Kind:          intent.Kind,
		Payload:       payload,
		Status:        shared.OutboxStatusPending,
		Attempts:      0,
		CreatedAt:     time.Now(),
	}, nil
}

func (m *Message) IncrementAttempts() {
	m.Attempts++
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsProcessed() {
	m.Status = shared.OutboxStatusProcessed
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsFailed() {
	m.Status = shared.OutboxStatusFailedToPublish
	now := time.Now()
	m.LastAttemptAt = &now
}

// GetIntent extracts the notification intent from the payload
func (m *Message) GetIntent() (*shared.NotificationIntent, error) {
	var intent shared.NotificationIntent
	if err := json.Unmarshal(m.Payload, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
