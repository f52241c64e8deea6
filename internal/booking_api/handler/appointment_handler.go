package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/barbearia-digital/booking-ledger/internal/booking_api/middleware"
	"github.com/barbearia-digital/booking-ledger/internal/booking_api/service"
	"github.com/barbearia-digital/booking-ledger/internal/domain/appointment"
	"github.com/barbearia-digital/booking-ledger/internal/domain/catalog"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// AppointmentHandler handles HTTP requests for appointment operations
type AppointmentHandler struct {
	bookingService service.BookingService
	logger         *slog.Logger
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(logger *slog.Logger, bookingService service.BookingService) *AppointmentHandler {
	return &AppointmentHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// Create books a new appointment
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	appt, err := h.bookingService.CreateAppointment(c.Request.Context(), service.CreateAppointmentParams{
		Date:           req.Date,
		Time:           req.Time,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientWhatsApp: req.ClientWhatsApp,
		Service:        catalog.ServiceKind(req.Service),
		CorrelationID:  middleware.GetCorrelationID(c),
	})
	if err != nil {
		h.respondWithMappedError(c, err)
		return
	}

	RespondCreated(c, mapAppointmentToResponse(appt))
}

// GetByID retrieves appointment details by its ID, returns 404 if not found
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	appt, err := h.bookingService.GetAppointmentByID(c.Request.Context(), id)
	if err != nil {
		h.respondWithMappedError(c, err)
		return
	}

	RespondOK(c, mapAppointmentToResponse(appt))
}

// List retrieves appointments in chronological order, optionally filtered
// by a ?status= query parameter
func (h *AppointmentHandler) List(c *gin.Context) {
	status := shared.AppointmentStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		RespondBadRequest(c, "Invalid status filter")
		return
	}

	appts, err := h.bookingService.ListAppointments(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("Failed to list appointments", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		responses = append(responses, mapAppointmentToResponse(appt))
	}

	RespondOK(c, responses)
}

// Update merges a raw field patch into an appointment. Status written through
// this path is not validated against the transition table.
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	patch := service.AppointmentPatch{
		Date:           req.Date,
		Time:           req.Time,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientWhatsApp: req.ClientWhatsApp,
	}
	if req.Service != nil {
		kind := catalog.ServiceKind(*req.Service)
		patch.Service = &kind
	}
	if req.Status != nil {
		status := shared.AppointmentStatus(*req.Status)
		patch.Status = &status
	}

	appt, err := h.bookingService.UpdateAppointment(c.Request.Context(), id, patch)
	if err != nil {
		h.respondWithMappedError(c, err)
		return
	}

	RespondOK(c, mapAppointmentToResponse(appt))
}

// SetStatus applies a validated status transition
func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	status := shared.AppointmentStatus(req.Status)
	if !status.IsValid() {
		RespondBadRequest(c, "Invalid status")
		return
	}

	appt, err := h.bookingService.SetStatus(c.Request.Context(), id, status, middleware.GetCorrelationID(c))
	if err != nil {
		h.respondWithMappedError(c, err)
		return
	}

	RespondOK(c, mapAppointmentToResponse(appt))
}

// Reschedule moves an appointment to a new date and time slot
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	appt, err := h.bookingService.Reschedule(c.Request.Context(), id, req.Date, req.Time, middleware.GetCorrelationID(c))
	if err != nil {
		h.respondWithMappedError(c, err)
		return
	}

	RespondOK(c, mapAppointmentToResponse(appt))
}

// Delete removes an appointment and its finance entry
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.bookingService.DeleteAppointment(c.Request.Context(), id); err != nil {
		h.respondWithMappedError(c, err)
		return
	}

	RespondNoContent(c)
}

// SendNotification enqueues a manually triggered notification of any kind,
// including reminders
func (h *AppointmentHandler) SendNotification(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	kind := shared.NotificationKind(req.Kind)
	if !kind.IsValid() {
		RespondBadRequest(c, "Invalid notification kind")
		return
	}

	err := h.bookingService.RequestNotification(c.Request.Context(), id, kind, middleware.GetCorrelationID(c))
	if err != nil {
		h.respondWithMappedError(c, err)
		return
	}

	RespondAccepted(c, gin.H{
		"appointment_id": id.String(),
		"kind":           string(kind),
		"status":         "QUEUED",
	})
}

func (h *AppointmentHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid appointment ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid appointment ID")
		return uuid.Nil, false
	}
	return id, true
}

// respondWithMappedError translates domain errors into HTTP status codes
func (h *AppointmentHandler) respondWithMappedError(c *gin.Context, err error) {
	var notFoundErr appointment.ErrAppointmentNotFound
	var transitionErr appointment.ErrInvalidTransition
	var unknownServiceErr catalog.ErrUnknownService

	switch {
	case errors.As(err, &notFoundErr):
		RespondNotFound(c, "Appointment not found")
	case errors.As(err, &transitionErr):
		RespondConflict(c, transitionErr.Error())
	case errors.As(err, &unknownServiceErr):
		RespondBadRequest(c, unknownServiceErr.Error())
	case errors.Is(err, appointment.ErrEmptyClientName),
		errors.Is(err, appointment.ErrEmptyClientPhone),
		errors.Is(err, appointment.ErrInvalidDate),
		errors.Is(err, appointment.ErrInvalidTimeSlot),
		errors.Is(err, service.ErrNoNotificationContact):
		RespondBadRequest(c, err.Error())
	default:
		h.logger.Error("Unhandled appointment operation error", "error", err)
		RespondInternalError(c)
	}
}

// mapAppointmentToResponse maps an appointment to its response DTO
func mapAppointmentToResponse(appt *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:               appt.ID.String(),
		Date:             appt.Date,
		Time:             appt.Time,
		ClientName:       appt.ClientName,
		ClientPhone:      appt.ClientPhone,
		ClientWhatsApp:   appt.ClientWhatsApp,
		Service:          string(appt.Service),
		DurationMinutes:  appt.DurationMinutes,
		Price:            appt.Price,
		Status:           string(appt.Status),
		NotificationSent: appt.NotificationSent,
		CreatedAt:        appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        appt.UpdatedAt.Format(time.RFC3339),
	}
}
