package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbearia-digital/booking-ledger/internal/domain/appointment"
	"github.com/barbearia-digital/booking-ledger/internal/domain/catalog"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestAppointment() *appointment.Appointment {
	now := time.Now()
	return &appointment.Appointment{
		ID:               uuid.New(),
		Date:             "2025-07-15",
		Time:             "09:45",
		ClientName:       "Carlos Souza",
		ClientPhone:      "11988887777",
		ClientWhatsApp:   "11988887777",
		Service:          catalog.ServiceHaircut,
		DurationMinutes:  30,
		Price:            3000,
		Status:           shared.AppointmentStatusPending,
		NotificationSent: false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func apptRows(appts ...*appointment.Appointment) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "date", "time", "client_name", "client_phone", "client_whatsapp", "service", "duration_minutes", "price", "status", "notification_sent", "created_at", "updated_at"})
	for _, a := range appts {
		rows.AddRow(a.ID, a.Date, a.Time, a.ClientName, a.ClientPhone, a.ClientWhatsApp, a.Service, a.DurationMinutes, a.Price, a.Status, a.NotificationSent, a.CreatedAt, a.UpdatedAt)
	}
	return rows
}

func TestAppointmentRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AppointmentRepository{querier: mock, logger: logger}
	appt := newTestAppointment()

	query := `
		INSERT INTO appointments \(id, date, time, client_name, client_phone, client_whatsapp, service, duration_minutes, price, status, notification_sent, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9, \$10, \$11, \$12, \$13\)
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(appt.ID, appt.Date, appt.Time, appt.ClientName, appt.ClientPhone, appt.ClientWhatsApp, appt.Service, appt.DurationMinutes, appt.Price, appt.Status, appt.NotificationSent, appt.CreatedAt, appt.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, appt)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(appt.ID, appt.Date, appt.Time, appt.ClientName, appt.ClientPhone, appt.ClientWhatsApp, appt.Service, appt.DurationMinutes, appt.Price, appt.Status, appt.NotificationSent, appt.CreatedAt, appt.UpdatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, appt)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create appointment")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppointmentRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AppointmentRepository{querier: mock, logger: logger}
	expected := newTestAppointment()

	query := `
		SELECT id, date, time, client_name, client_phone, client_whatsapp, service, duration_minutes, price, status, notification_sent, created_at, updated_at
		FROM appointments
		WHERE id = \$1
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(expected.ID).WillReturnRows(apptRows(expected))

		appt, err := repo.GetByID(ctx, expected.ID)
		assert.NoError(t, err)
		assert.Equal(t, expected, appt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(expected.ID).WillReturnError(pgx.ErrNoRows)

		appt, err := repo.GetByID(ctx, expected.ID)
		assert.Error(t, err)
		assert.Nil(t, appt)
		var notFoundErr appointment.ErrAppointmentNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, expected.ID, notFoundErr.AppointmentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("some db error")
		mock.ExpectQuery(query).WithArgs(expected.ID).WillReturnError(dbErr)

		appt, err := repo.GetByID(ctx, expected.ID)
		assert.Error(t, err)
		assert.Nil(t, appt)
		assert.Contains(t, err.Error(), "failed to get appointment")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppointmentRepository_Update(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AppointmentRepository{querier: mock, logger: logger}
	appt := newTestAppointment()
	appt.Status = shared.AppointmentStatusConfirmed

	query := `
		UPDATE appointments
		SET date = \$1, time = \$2, client_name = \$3, client_phone = \$4, client_whatsapp = \$5, service = \$6, duration_minutes = \$7, price = \$8, status = \$9, notification_sent = \$10, updated_at = \$11
		WHERE id = \$12
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(appt.Date, appt.Time, appt.ClientName, appt.ClientPhone, appt.ClientWhatsApp, appt.Service, appt.DurationMinutes, appt.Price, appt.Status, appt.NotificationSent, appt.UpdatedAt, appt.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(ctx, appt)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(appt.Date, appt.Time, appt.ClientName, appt.ClientPhone, appt.ClientWhatsApp, appt.Service, appt.DurationMinutes, appt.Price, appt.Status, appt.NotificationSent, appt.UpdatedAt, appt.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(ctx, appt)
		assert.Error(t, err)
		var notFoundErr appointment.ErrAppointmentNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, appt.ID, notFoundErr.AppointmentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("update db error")
		mock.ExpectExec(query).
			WithArgs(appt.Date, appt.Time, appt.ClientName, appt.ClientPhone, appt.ClientWhatsApp, appt.Service, appt.DurationMinutes, appt.Price, appt.Status, appt.NotificationSent, appt.UpdatedAt, appt.ID).
			WillReturnError(dbErr)

		err := repo.Update(ctx, appt)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update appointment")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppointmentRepository_Delete(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AppointmentRepository{querier: mock, logger: logger}
	apptID := uuid.New()

	query := `
		DELETE FROM appointments
		WHERE id = \$1
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(apptID).WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err := repo.Delete(ctx, apptID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(apptID).WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(ctx, apptID)
		assert.Error(t, err)
		var notFoundErr appointment.ErrAppointmentNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppointmentRepository_List(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AppointmentRepository{querier: mock, logger: logger}

	first := newTestAppointment()
	second := newTestAppointment()
	second.Date = "2025-07-16"
	second.Time = "10:30"

	query := `
		SELECT id, date, time, client_name, client_phone, client_whatsapp, service, duration_minutes, price, status, notification_sent, created_at, updated_at
		FROM appointments
		ORDER BY date ASC, time ASC, created_at ASC
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).WillReturnRows(apptRows(first, second))

		appts, err := repo.List(ctx)
		assert.NoError(t, err)
		require.Len(t, appts, 2)
		assert.Equal(t, first, appts[0])
		assert.Equal(t, second, appts[1])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery(query).WillReturnRows(apptRows())

		appts, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, appts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("list db error")
		mock.ExpectQuery(query).WillReturnError(dbErr)

		appts, err := repo.List(ctx)
		assert.Error(t, err)
		assert.Nil(t, appts)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppointmentRepository_ListByStatus(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AppointmentRepository{querier: mock, logger: logger}
	appt := newTestAppointment()
	appt.Status = shared.AppointmentStatusConfirmed

	query := `
		SELECT id, date, time, client_name, client_phone, client_whatsapp, service, duration_minutes, price, status, notification_sent, created_at, updated_at
		FROM appointments
		WHERE status = \$1
		ORDER BY date ASC, time ASC, created_at ASC
	`

	mock.ExpectQuery(query).
		WithArgs(shared.AppointmentStatusConfirmed).
		WillReturnRows(apptRows(appt))

	appts, err := repo.ListByStatus(ctx, shared.AppointmentStatusConfirmed)
	assert.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, appt, appts[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_SumPriceByStatuses(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AppointmentRepository{querier: mock, logger: logger}
	statuses := []shared.AppointmentStatus{shared.AppointmentStatusConfirmed, shared.AppointmentStatusCompleted}

	t.Run("all time", func(t *testing.T) {
		query := `
			SELECT COALESCE\(SUM\(price\), 0\)
			FROM appointments
			WHERE status = ANY\(\$1\)
		`
		mock.ExpectQuery(query).
			WithArgs(statuses).
			WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(7500)))

		total, err := repo.SumPriceByStatuses(ctx, statuses, "")
		assert.NoError(t, err)
		assert.Equal(t, int64(7500), total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("month filter", func(t *testing.T) {
		query := `
			SELECT COALESCE\(SUM\(price\), 0\)
			FROM appointments
			WHERE status = ANY\(\$1\)
		 AND date LIKE \$2`
		mock.ExpectQuery(query).
			WithArgs(statuses, "2025-07-%").
			WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(3000)))

		total, err := repo.SumPriceByStatuses(ctx, statuses, "2025-07")
		assert.NoError(t, err)
		assert.Equal(t, int64(3000), total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("sum db error")
		query := `
			SELECT COALESCE\(SUM\(price\), 0\)
			FROM appointments
			WHERE status = ANY\(\$1\)
		`
		mock.ExpectQuery(query).WithArgs(statuses).WillReturnError(dbErr)

		total, err := repo.SumPriceByStatuses(ctx, statuses, "")
		assert.Error(t, err)
		assert.Zero(t, total)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppointmentRepository_CountByStatus(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AppointmentRepository{querier: mock, logger: logger}

	query := `
		SELECT COUNT\(\*\)
		FROM appointments
		WHERE status = \$1
	`

	mock.ExpectQuery(query).
		WithArgs(shared.AppointmentStatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))

	count, err := repo.CountByStatus(ctx, shared.AppointmentStatusPending)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_SetNotificationSent(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AppointmentRepository{querier: mock, logger: logger}
	apptID := uuid.New()

	query := `
		UPDATE appointments
		SET notification_sent = \$1
		WHERE id = \$2
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(true, apptID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.SetNotificationSent(ctx, apptID, true)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(true, apptID).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.SetNotificationSent(ctx, apptID, true)
		assert.Error(t, err)
		var notFoundErr appointment.ErrAppointmentNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppointmentRepository_WithTx(t *testing.T) {
	logger := newTestLogger()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	originalRepo := &AppointmentRepository{querier: mockPool, logger: logger}

	mockPool.ExpectBegin()
	pgxTx, err := mockPool.Begin(context.Background())
	require.NoError(t, err)

	txRepo := originalRepo.WithTx(pgxTx)

	assert.NotNil(t, txRepo)
	assert.Equal(t, originalRepo.logger, txRepo.(*AppointmentRepository).logger)
	assert.Equal(t, pgxTx, txRepo.(*AppointmentRepository).querier, "Querier in new repo should be the transaction")

	assert.NoError(t, mockPool.ExpectationsWereMet())
}
