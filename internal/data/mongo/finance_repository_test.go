package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/barbearia-digital/booking-ledger/internal/domain/catalog"
	"github.com/barbearia-digital/booking-ledger/internal/domain/finance"
	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

type MockFinanceRepository struct {
	mock.Mock
}

func (m *MockFinanceRepository) Create(ctx context.Context, entry *finance.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFinanceRepository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*finance.Entry, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Entry), args.Error(1)
}

func (m *MockFinanceRepository) Delete(ctx context.Context, appointmentID uuid.UUID) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func (m *MockFinanceRepository) List(ctx context.Context, limit, offset int) ([]*finance.Entry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.Entry), args.Error(1)
}

func (m *MockFinanceRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestNewFinanceRepository(t *testing.T) {
	db := &mongo.Database{}
	logger := slog.Default()

	repo := NewFinanceRepository(logger, db)

	assert.NotNil(t, repo)
	assert.IsType(t, &FinanceRepository{}, repo)
}

func TestFinanceRepository_Create(t *testing.T) {
	mockRepo := &MockFinanceRepository{}

	apptID := uuid.New()
	entry := &finance.Entry{
		AppointmentID: apptID,
		Date:          "2025-07-15",
		ClientName:    "Carlos Souza",
		Service:       catalog.ServiceHaircut,
		Price:         3000,
		Status:        shared.PaymentStatusPending,
		CreatedAt:     time.Now(),
	}

	tests := []struct {
		name          string
		setupMocks    func()
		expectedError error
	}{
		{
			name: "successful creation",
			setupMocks: func() {
				mockRepo.On("Create", mock.Anything, entry).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "duplicate entry",
			setupMocks: func() {
				mockRepo.On("Create", mock.Anything, entry).Return(finance.ErrDuplicateEntry{AppointmentID: apptID})
			},
			expectedError: finance.ErrDuplicateEntry{AppointmentID: apptID},
		},
		{
			name: "database error",
			setupMocks: func() {
				mockRepo.On("Create", mock.Anything, entry).Return(errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo = &MockFinanceRepository{}
			tt.setupMocks()

			ctx := context.Background()
			err := mockRepo.Create(ctx, entry)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFinanceRepository_GetByAppointmentID(t *testing.T) {
	mockRepo := &MockFinanceRepository{}

	apptID := uuid.New()
	entry := &finance.Entry{
		AppointmentID: apptID,
		Date:          "2025-07-15",
		ClientName:    "Carlos Souza",
		Service:       catalog.ServiceCombo,
		Price:         4500,
		Status:        shared.PaymentStatusPending,
		CreatedAt:     time.Now(),
	}

	tests := []struct {
		name          string
		setupMocks    func()
		expectedEntry *finance.Entry
		expectedError error
	}{
		{
			name: "entry found",
			setupMocks: func() {
				mockRepo.On("GetByAppointmentID", mock.Anything, apptID).Return(entry, nil)
			},
			expectedEntry: entry,
			expectedError: nil,
		},
		{
			name: "entry not found",
			setupMocks: func() {
				mockRepo.On("GetByAppointmentID", mock.Anything, apptID).Return(nil, finance.ErrEntryNotFound{AppointmentID: apptID})
			},
			expectedEntry: nil,
			expectedError: finance.ErrEntryNotFound{AppointmentID: apptID},
		},
		{
			name: "database error",
			setupMocks: func() {
				mockRepo.On("GetByAppointmentID", mock.Anything, apptID).Return(nil, errors.New("db error"))
			},
			expectedEntry: nil,
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo = &MockFinanceRepository{}
			tt.setupMocks()

			ctx := context.Background()
			result, err := mockRepo.GetByAppointmentID(ctx, apptID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedEntry, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFinanceRepository_Delete(t *testing.T) {
	mockRepo := &MockFinanceRepository{}

	apptID := uuid.New()

	tests := []struct {
		name          string
		setupMocks    func()
		expectedError error
	}{
		{
			name: "successful delete",
			setupMocks: func() {
				mockRepo.On("Delete", mock.Anything, apptID).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "already removed is not an error",
			setupMocks: func() {
				mockRepo.On("Delete", mock.Anything, apptID).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "database error",
			setupMocks: func() {
				mockRepo.On("Delete", mock.Anything, apptID).Return(errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo = &MockFinanceRepository{}
			tt.setupMocks()

			ctx := context.Background()
			err := mockRepo.Delete(ctx, apptID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFinanceRepository_List(t *testing.T) {
	mockRepo := &MockFinanceRepository{}

	entries := []*finance.Entry{
		{
			AppointmentID: uuid.New(),
			Date:          "2025-07-16",
			ClientName:    "Ana Lima",
			Service:       catalog.ServiceBeard,
			Price:         2000,
			Status:        shared.PaymentStatusPending,
			CreatedAt:     time.Now(),
		},
		{
			AppointmentID: uuid.New(),
			Date:          "2025-07-15",
			ClientName:    "Carlos Souza",
			Service:       catalog.ServiceHaircut,
			Price:         3000,
			Status:        shared.PaymentStatusPending,
			CreatedAt:     time.Now(),
		},
	}

	mockRepo.On("List", mock.Anything, 10, 0).Return(entries, nil)
	mockRepo.On("Count", mock.Anything).Return(int64(2), nil)

	ctx := context.Background()

	result, err := mockRepo.List(ctx, 10, 0)
	assert.NoError(t, err)
	assert.Equal(t, entries, result)

	count, err := mockRepo.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	mockRepo.AssertExpectations(t)
}
