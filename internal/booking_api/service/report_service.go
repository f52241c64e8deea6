package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/barbearia-digital/booking-ledger/internal/domain/appointment"
	"github.com/barbearia-digital/booking-ledger/internal/domain/finance"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// revenueStatuses are the appointment statuses that count as revenue.
// Pending bookings are expectation, not income, and cancelled ones never
// earned anything.
var revenueStatuses = []shared.AppointmentStatus{
	shared.AppointmentStatusConfirmed,
	shared.AppointmentStatusCompleted,
}

// ReportServiceImpl implements the ReportService interface
type ReportServiceImpl struct {
	apptRepo    appointment.Repository
	financeRepo finance.Repository
	logger      *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(logger *slog.Logger, apptRepo appointment.Repository, financeRepo finance.Repository) ReportService {
	return &ReportServiceImpl{
		apptRepo:    apptRepo,
		financeRepo: financeRepo,
		logger:      logger,
	}
}

// RevenueTotals sums appointment prices over the revenue statuses. The totals
// read from the appointment store, never from the finance entries, so manual
// ledger edits cannot skew the report.
func (s *ReportServiceImpl) RevenueTotals(ctx context.Context) (*RevenueTotals, error) {
	allTime, err := s.apptRepo.SumPriceByStatuses(ctx, revenueStatuses, "")
	if err != nil {
		return nil, err
	}

	month := time.Now().Format("2006-01")
	currentMonth, err := s.apptRepo.SumPriceByStatuses(ctx, revenueStatuses, month)
	if err != nil {
		return nil, err
	}

	pendingCount, err := s.apptRepo.CountByStatus(ctx, shared.AppointmentStatusPending)
	if err != nil {
		return nil, err
	}

	return &RevenueTotals{
		AllTime:      allTime,
		CurrentMonth: currentMonth,
		PendingCount: pendingCount,
	}, nil
}

// ListFinanceEntries retrieves paginated finance entries, newest date first
// Returns entries, total count, and any error
func (s *ReportServiceImpl) ListFinanceEntries(ctx context.Context, page, perPage int) ([]*finance.Entry, int64, error) {
	offset := (page - 1) * perPage

	entries, err := s.financeRepo.List(ctx, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.financeRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
