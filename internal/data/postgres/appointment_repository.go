// Package postgres provides PostgreSQL implementations of the domain repositories.
// It handles all database operations while maintaining transaction safety and
// proper error handling for the booking system.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/barbearia-digital/booking-ledger/internal/domain/appointment"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
	"github.com/barbearia-digital/booking-ledger/internal/platform/persistence"
)

// AppointmentRepository implements the appointment.Repository interface for PostgreSQL
type AppointmentRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAppointmentRepository creates a new PostgreSQL appointment repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewAppointmentRepository(logger *slog.Logger, db *persistence.PostgresDB) appointment.Repository {
	return &AppointmentRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic operations
// across multiple repository calls.
func (r *AppointmentRepository) WithTx(tx pgx.Tx) appointment.Repository {
	return &AppointmentRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const appointmentColumns = `id, date, time, client_name, client_phone, client_whatsapp, service, duration_minutes, price, status, notification_sent, created_at, updated_at`

// Create stores a new appointment
func (r *AppointmentRepository) Create(ctx context.Context, appt *appointment.Appointment) error {
	query := `
		INSERT INTO appointments (id, date, time, client_name, client_phone, client_whatsapp, service, duration_minutes, price, status, notification_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.querier.Exec(ctx, query,
		appt.ID,
		appt.Date,
		appt.Time,
		appt.ClientName,
		appt.ClientPhone,
		appt.ClientWhatsApp,
		appt.Service,
		appt.DurationMinutes,
		appt.Price,
		appt.Status,
		appt.NotificationSent,
		appt.CreatedAt,
		appt.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create appointment", "error", err)
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return nil
}

// GetByID retrieves an appointment by its ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`

	appt, err := r.scanOne(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, appointment.ErrAppointmentNotFound{AppointmentID: id}
		}
		r.logger.Error("Failed to get appointment", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return appt, nil
}

// Update rewrites all mutable fields of an appointment. Price and duration are
// written back verbatim; they were frozen at creation and the service layer
// never recomputes them. Last write wins, no concurrency token.
func (r *AppointmentRepository) Update(ctx context.Context, appt *appointment.Appointment) error {
	query := `
		UPDATE appointments
		SET date = $1, time = $2, client_name = $3, client_phone = $4, client_whatsapp = $5, service = $6, duration_minutes = $7, price = $8, status = $9, notification_sent = $10, updated_at = $11
		WHERE id = $12
	`

	result, err := r.querier.Exec(ctx, query,
		appt.Date,
		appt.Time,
		appt.ClientName,
		appt.ClientPhone,
		appt.ClientWhatsApp,
		appt.Service,
		appt.DurationMinutes,
		appt.Price,
		appt.Status,
		appt.NotificationSent,
		appt.UpdatedAt,
		appt.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update appointment", "id", appt.ID.String(), "error", err)
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return appointment.ErrAppointmentNotFound{AppointmentID: appt.ID}
	}

	return nil
}

// Delete removes an appointment permanently.
// Returns ErrAppointmentNotFound when the id does not resolve.
func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM appointments
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete appointment", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return appointment.ErrAppointmentNotFound{AppointmentID: id}
	}

	return nil
}

// List retrieves all appointments in chronological order. Ties on the same
// slot fall back to insertion order.
func (r *AppointmentRepository) List(ctx context.Context) ([]*appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		ORDER BY date ASC, time ASC, created_at ASC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list appointments", "error", err)
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// ListByStatus retrieves appointments with the given status in chronological order
func (r *AppointmentRepository) ListByStatus(ctx context.Context, status shared.AppointmentStatus) ([]*appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE status = $1
		ORDER BY date ASC, time ASC, created_at ASC
	`

	rows, err := r.querier.Query(ctx, query, status)
	if err != nil {
		r.logger.Error("Failed to list appointments by status", "status", string(status), "error", err)
		return nil, fmt.Errorf("failed to list appointments by status: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// SumPriceByStatuses totals appointment prices over the given statuses.
// A non-empty month ("2006-01") restricts the sum to that calendar month.
func (r *AppointmentRepository) SumPriceByStatuses(ctx context.Context, statuses []shared.AppointmentStatus, month string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(price), 0)
		FROM appointments
		WHERE status = ANY($1)
	`
	args := []interface{}{statuses}

	if month != "" {
		query += ` AND date LIKE $2`
		args = append(args, month+"-%")
	}

	var total int64
	if err := r.querier.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to sum appointment prices", "error", err)
		return 0, fmt.Errorf("failed to sum appointment prices: %w", err)
	}

	return total, nil
}

// CountByStatus counts appointments with the given status
func (r *AppointmentRepository) CountByStatus(ctx context.Context, status shared.AppointmentStatus) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE status = $1
	`

	var count int64
	if err := r.querier.QueryRow(ctx, query, status).Scan(&count); err != nil {
		r.logger.Error("Failed to count appointments", "status", string(status), "error", err)
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	return count, nil
}

// SetNotificationSent flips the notification flag after a delivery outcome
func (r *AppointmentRepository) SetNotificationSent(ctx context.Context, id uuid.UUID, sent bool) error {
	query := `
		UPDATE appointments
		SET notification_sent = $1
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, sent, id)
	if err != nil {
		r.logger.Error("Failed to set notification flag", "id", id.String(), "error", err)
		return fmt.Errorf("failed to set notification flag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return appointment.ErrAppointmentNotFound{AppointmentID: id}
	}

	return nil
}

func (r *AppointmentRepository) scanOne(row pgx.Row) (*appointment.Appointment, error) {
	var appt appointment.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.Date,
		&appt.Time,
		&appt.ClientName,
		&appt.ClientPhone,
		&appt.ClientWhatsApp,
		&appt.Service,
		&appt.DurationMinutes,
		&appt.Price,
		&appt.Status,
		&appt.NotificationSent,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *AppointmentRepository) scanMany(rows pgx.Rows) ([]*appointment.Appointment, error) {
	var appts []*appointment.Appointment
	for rows.Next() {
		appt, err := r.scanOne(rows)
		if err != nil {
			r.logger.Error("Failed to scan appointment", "error", err)
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appts = append(appts, appt)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over appointments", "error", err)
		return nil, fmt.Errorf("error iterating over appointments: %w", err)
	}

	return appts, nil
}
