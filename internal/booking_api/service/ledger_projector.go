package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/barbearia-digital/booking-ledger/internal/domain/appointment"
	"github.com/barbearia-digital/booking-ledger/internal/domain/finance"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// LedgerProjectorImpl implements the LedgerProjector interface
type LedgerProjectorImpl struct {
	financeRepo finance.Repository
	logger      *slog.Logger
}

// NewLedgerProjector creates a new ledger projector
func NewLedgerProjector(logger *slog.Logger, financeRepo finance.Repository) LedgerProjector {
	return &LedgerProjectorImpl{
		financeRepo: financeRepo,
		logger:      logger,
	}
}

// Project creates the pending finance entry derived from a new appointment.
// The entry snapshots price and service at booking time and stays pending
// until a person records the payment.
func (p *LedgerProjectorImpl) Project(ctx context.Context, appt *appointment.Appointment) error {
	entry := finance.NewEntry(appt)
	if err := p.financeRepo.Create(ctx, entry); err != nil {
		p.logger.Error("Failed to project finance entry",
			"appointment_id", appt.ID.String(),
			"error", err,
		)
		return err
	}
	return nil
}

// Reconcile brings the finance entry in line with the appointment's current
// status. Cancellation removes the entry; every other status leaves it as is.
// Entries are never promoted to received here, that stays a manual step.
func (p *LedgerProjectorImpl) Reconcile(ctx context.Context, appt *appointment.Appointment) error {
	if appt.Status != shared.AppointmentStatusCancelled {
		return nil
	}

	if err := p.financeRepo.Delete(ctx, appt.ID); err != nil {
		p.logger.Error("Failed to remove finance entry for cancelled appointment",
			"appointment_id", appt.ID.String(),
			"error", err,
		)
		return err
	}
	return nil
}

// Remove deletes the finance entry for a deleted appointment. Removing an
// entry that was already dropped on cancellation is fine.
func (p *LedgerProjectorImpl) Remove(ctx context.Context, appointmentID uuid.UUID) error {
	if err := p.financeRepo.Delete(ctx, appointmentID); err != nil {
		p.logger.Error("Failed to remove finance entry",
			"appointment_id", appointmentID.String(),
			"error", err,
		)
		return err
	}
	return nil
}
