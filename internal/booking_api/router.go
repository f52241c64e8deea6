package booking_api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barbearia-digital/booking-ledger/internal/booking_api/handler"
	"github.com/barbearia-digital/booking-ledger/internal/booking_api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	appointmentHandler *handler.AppointmentHandler,
	reportHandler *handler.ReportHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Appointment lifecycle
		appointments := v1.Group("/appointments")
		{
			appointments.POST("", appointmentHandler.Create)
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/:id", appointmentHandler.GetByID)
			appointments.PATCH("/:id", appointmentHandler.Update)
			appointments.PUT("/:id/status", appointmentHandler.SetStatus)
			appointments.PUT("/:id/schedule", appointmentHandler.Reschedule)
			appointments.DELETE("/:id", appointmentHandler.Delete)
			appointments.POST("/:id/notifications", appointmentHandler.SendNotification)
		}

		// Finance and reporting
		v1.GET("/finance/entries", reportHandler.ListFinanceEntries)
		v1.GET("/reports/revenue", reportHandler.Revenue)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
