package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barbearia-digital/booking-ledger/internal/domain/finance"
)

const (
	// FinanceCollectionName is the name of the finance entries collection in MongoDB
	FinanceCollectionName = "finance_entries"
)

// FinanceRepository implements the finance.Repository interface for MongoDB
type FinanceRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewFinanceRepository creates a new MongoDB finance repository
func NewFinanceRepository(logger *slog.Logger, db *mongo.Database) finance.Repository {
	return &FinanceRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new finance entry after checking for duplicates.
// Returns ErrDuplicateEntry if an entry for the same appointment exists.
func (r *FinanceRepository) Create(ctx context.Context, entry *finance.Entry) error {
	collection := r.db.Collection(FinanceCollectionName)

	existingEntry, err := r.GetByAppointmentID(ctx, entry.AppointmentID)
	if err != nil && !errors.Is(err, finance.ErrEntryNotFound{}) {
		r.logger.Error("Failed to check for existing finance entry",
			"appointment_id", entry.AppointmentID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing finance entry: %w", err)
	}

	if existingEntry != nil {
		return finance.ErrDuplicateEntry{AppointmentID: entry.AppointmentID}
	}

	_, err = collection.InsertOne(ctx, entry)
	if err != nil {
		r.logger.Error("Failed to create finance entry",
			"appointment_id", entry.AppointmentID.String(),
			"error", err)
		return fmt.Errorf("failed to create finance entry: %w", err)
	}

	return nil
}

// GetByAppointmentID retrieves the finance entry derived from an appointment.
// Returns ErrEntryNotFound if no entry exists for the given appointment.
func (r *FinanceRepository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*finance.Entry, error) {
	collection := r.db.Collection(FinanceCollectionName)

	filter := bson.M{"appointment_id": appointmentID}
	var entry finance.Entry
	err := collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, finance.ErrEntryNotFound{AppointmentID: appointmentID}
		}
		r.logger.Error("Failed to get finance entry",
			"appointment_id", appointmentID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get finance entry: %w", err)
	}

	return &entry, nil
}

// Delete removes the finance entry for an appointment. Removing an entry
// that is already gone is treated as success so that cancellation and
// deletion stay idempotent.
func (r *FinanceRepository) Delete(ctx context.Context, appointmentID uuid.UUID) error {
	collection := r.db.Collection(FinanceCollectionName)

	filter := bson.M{"appointment_id": appointmentID}
	_, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to delete finance entry",
			"appointment_id", appointmentID.String(),
			"error", err)
		return fmt.Errorf("failed to delete finance entry: %w", err)
	}

	return nil
}

// List retrieves paginated finance entries sorted by appointment date,
// most recent day first. Entries on the same day come back newest first.
func (r *FinanceRepository) List(ctx context.Context, limit, offset int) ([]*finance.Entry, error) {
	collection := r.db.Collection(FinanceCollectionName)

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list finance entries", "error", err)
		return nil, fmt.Errorf("failed to list finance entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*finance.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode finance entries", "error", err)
		return nil, fmt.Errorf("failed to decode finance entries: %w", err)
	}

	return entries, nil
}

// Count counts the total number of finance entries
func (r *FinanceRepository) Count(ctx context.Context) (int64, error) {
	collection := r.db.Collection(FinanceCollectionName)

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to count finance entries", "error", err)
		return 0, fmt.Errorf("failed to count finance entries: %w", err)
	}

	return count, nil
}
