package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barbearia-digital/booking-ledger/internal/booking_api/service"
	"github.com/barbearia-digital/booking-ledger/internal/domain/finance"
)

// ReportHandler handles HTTP requests for revenue reports and finance entries
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Revenue returns the revenue totals computed from appointment statuses
func (h *ReportHandler) Revenue(c *gin.Context) {
	totals, err := h.reportService.RevenueTotals(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute revenue totals", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, totals)
}

// ListFinanceEntries retrieves paginated finance entries, newest date first
func (h *ReportHandler) ListFinanceEntries(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	entries, total, err := h.reportService.ListFinanceEntries(
		c.Request.Context(),
		pagination.Page,
		pagination.PerPage,
	)
	if err != nil {
		h.logger.Error("Failed to list finance entries", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]FinanceEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapFinanceEntryToResponse(entry))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, pagination.Page, pagination.PerPage, int(total))
}

// mapFinanceEntryToResponse maps a finance entry to its response DTO
func mapFinanceEntryToResponse(entry *finance.Entry) FinanceEntryResponse {
	return FinanceEntryResponse{
		AppointmentID: entry.AppointmentID.String(),
		Date:          entry.Date,
		ClientName:    entry.ClientName,
		Service:       string(entry.Service),
		Price:         entry.Price,
		Status:        string(entry.Status),
		CreatedAt:     entry.CreatedAt.Format(time.RFC3339),
	}
}
