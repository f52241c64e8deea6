package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// MockDispatchService mocks the DispatchService interface
type MockDispatchService struct {
	mock.Mock
}

func (m *MockDispatchService) DispatchNotification(ctx context.Context, intent *shared.NotificationIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

var _ DispatchService = (*MockDispatchService)(nil)

func TestWorkerPoolDispatchService_DispatchNotification(t *testing.T) {
	logger := newTestLogger()

	tests := []struct {
		name          string
		setupMocks    func(base *MockDispatchService)
		expectedError error
	}{
		{
			name: "successful dispatch",
			setupMocks: func(base *MockDispatchService) {
				base.On("DispatchNotification", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedError: nil,
		},
		{
			name: "dispatch error",
			setupMocks: func(base *MockDispatchService) {
				base.On("DispatchNotification", mock.Anything, mock.Anything).Return(errors.New("dispatch error")).Once()
			},
			expectedError: errors.New("dispatch error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBaseService := &MockDispatchService{}

			workerPoolService, err := NewWorkerPoolDispatchService(
				mockBaseService,
				WorkerPoolConfig{
					Size: 2,
				},
				logger,
			)
			assert.NoError(t, err)
			defer workerPoolService.Shutdown()

			tt.setupMocks(mockBaseService)

			err = workerPoolService.DispatchNotification(context.Background(), testIntent(shared.NotificationKindConfirmation))

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockBaseService.AssertExpectations(t)
		})
	}
}

func TestWorkerPoolDispatchService_DuplicateIntentsInFlight(t *testing.T) {
	mockBaseService := &MockDispatchService{}
	logger := newTestLogger()

	workerPoolService, err := NewWorkerPoolDispatchService(
		mockBaseService,
		WorkerPoolConfig{
			Size: 4,
		},
		logger,
	)
	assert.NoError(t, err)
	defer workerPoolService.Shutdown()

	// The same appointment and kind submitted concurrently; each submission
	// must get its own result back
	intent := testIntent(shared.NotificationKindReminder)

	mockBaseService.On("DispatchNotification", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		time.Sleep(20 * time.Millisecond)
	}).Return(nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, workerPoolService.DispatchNotification(context.Background(), intent))
		}()
	}
	wg.Wait()

	mockBaseService.AssertNumberOfCalls(t, "DispatchNotification", 4)
}

func TestWorkerPoolDispatchService_Concurrency(t *testing.T) {
	mockBaseService := &MockDispatchService{}
	logger := newTestLogger()

	workerPoolService, err := NewWorkerPoolDispatchService(
		mockBaseService,
		WorkerPoolConfig{
			Size: 5,
		},
		logger,
	)
	assert.NoError(t, err)
	defer workerPoolService.Shutdown()

	var mu sync.Mutex
	counter := 0

	mockBaseService.On("DispatchNotification", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		// Simulate some work
		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		counter++
		mu.Unlock()
	}).Return(nil)

	numIntents := 10
	var wg sync.WaitGroup
	wg.Add(numIntents)

	for i := 0; i < numIntents; i++ {
		go func() {
			defer wg.Done()

			intent := testIntent(shared.NotificationKindReminder)
			err := workerPoolService.DispatchNotification(context.Background(), intent)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Equal(t, numIntents, counter)

	assert.True(t, workerPoolService.Running() > 0)
	assert.Equal(t, 5, workerPoolService.Capacity())
}
