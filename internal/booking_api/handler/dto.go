package handler

// CreateAppointmentRequest represents a request to book a new appointment
type CreateAppointmentRequest struct {
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientWhatsApp string `json:"client_whatsapp,omitempty"`
	Service        string `json:"service" binding:"required"`
}

// UpdateAppointmentRequest represents a raw field patch. Absent fields are
// left untouched.
type UpdateAppointmentRequest struct {
	Date           *string `json:"date,omitempty"`
	Time           *string `json:"time,omitempty"`
	ClientName     *string `json:"client_name,omitempty"`
	ClientPhone    *string `json:"client_phone,omitempty"`
	ClientWhatsApp *string `json:"client_whatsapp,omitempty"`
	Service        *string `json:"service,omitempty"`
	Status         *string `json:"status,omitempty"`
}

// SetStatusRequest represents a validated status transition request
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RescheduleRequest represents a request to move an appointment to a new slot
type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// SendNotificationRequest represents a manually triggered notification
type SendNotificationRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// AppointmentResponse represents an appointment in API responses
type AppointmentResponse struct {
	ID               string `json:"id"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	ClientName       string `json:"client_name"`
	ClientPhone      string `json:"client_phone"`
	ClientWhatsApp   string `json:"client_whatsapp,omitempty"`
	Service          string `json:"service"`
	DurationMinutes  int    `json:"duration_minutes"`
	Price            int64  `json:"price"`
	Status           string `json:"status"`
	NotificationSent bool   `json:"notification_sent"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// FinanceEntryResponse represents a finance entry in API responses
type FinanceEntryResponse struct {
	AppointmentID string `json:"appointment_id"`
	Date          string `json:"date"`
	ClientName    string `json:"client_name"`
	Service       string `json:"service"`
	Price         int64  `json:"price"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
