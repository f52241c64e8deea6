package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// WorkerPoolDispatchService implements the DispatchService interface
type WorkerPoolDispatchService struct {
	baseService DispatchService
	pool        *ants.Pool
	logger      *slog.Logger
	// Use a mutex to protect access to the results map
	mu      sync.Mutex
	results map[string]chan error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolDispatchService(
	baseService DispatchService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolDispatchService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolDispatchService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan error),
	}, nil
}

// DispatchNotification submits an intent to the worker pool for delivery.
func (s *WorkerPoolDispatchService) DispatchNotification(ctx context.Context, intent *shared.NotificationIntent) error {
	logger := s.logger
	if intent.CorrelationID != "" {
		logger = s.logger.With("correlation_id", intent.CorrelationID)
	}

	logger.Info("Submitting notification to worker pool",
		"appointment_id", intent.AppointmentID.String(),
		"kind", intent.Kind,
	)

	// Create a channel to receive the result of the dispatch
	resultChan := make(chan error, 1)

	// Key by a per-task id; two intents for the same appointment and kind can
	// be in flight at once and must not share a map entry
	taskKey := uuid.New().String()
	s.mu.Lock()
	s.results[taskKey] = resultChan
	s.mu.Unlock()

	// Create a copy of the intent to avoid data races
	intentCopy := *intent

	err := s.pool.Submit(func() {
		err := s.baseService.DispatchNotification(ctx, &intentCopy)

		resultChan <- err

		s.mu.Lock()
		delete(s.results, taskKey)
		close(resultChan)
		s.mu.Unlock()
	})

	if err != nil {
		// If we couldn't submit the task to the pool, remove the result channel
		s.mu.Lock()
		delete(s.results, taskKey)
		close(resultChan)
		s.mu.Unlock()

		logger.Error("Failed to submit notification to worker pool",
			"appointment_id", intent.AppointmentID.String(),
			"error", err,
		)
		return err
	}

	// Wait for the result from the worker
	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolDispatchService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolDispatchService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolDispatchService) Capacity() int {
	return s.pool.Cap()
}
