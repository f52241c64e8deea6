package shared

// AppointmentStatus defines the lifecycle states of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// IsValid reports whether s is one of the known appointment statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further status transition is allowed
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

// PaymentStatus defines the payment-facing states of a finance entry.
// Entries are never promoted to "received" automatically; revenue totals
// are computed from appointment statuses instead.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusReceived  PaymentStatus = "received"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// NotificationKind defines the outbound message categories
type NotificationKind string

const (
	NotificationKindConfirmation NotificationKind = "confirmation"
	NotificationKindReschedule   NotificationKind = "reschedule"
	NotificationKindCancellation NotificationKind = "cancellation"
	NotificationKindReminder     NotificationKind = "reminder"
)

// IsValid reports whether k is a known notification kind
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationKindConfirmation, NotificationKindReschedule, NotificationKindCancellation, NotificationKindReminder:
		return true
	}
	return false
}

// OutboxStatus defines intent publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
