package service

import (
	"context"

	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// DispatchService defines the interface for delivering notification intents.
type DispatchService interface {
	DispatchNotification(ctx context.Context, intent *shared.NotificationIntent) error
}
