package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

// Repository defines the persistence surface for movement history, audits and
// daily summaries.
type Repository interface {
	RecordMovement(ctx context.Context, rec models.MovementRecord) error
	RecordAudit(ctx context.Context, audit models.StockAudit) error
	SaveDailySummary(ctx context.Context, summary models.DailySummary) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

const (
	movementsCollection = "movements"
	auditsCollection    = "audits"
	summariesCollection = "daily_summaries"
)

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

// RecordMovement appends one movement record to the history collection.
func (r *MongoDBRepository) RecordMovement(ctx context.Context, rec models.MovementRecord) error {
	collection := r.client.Database(r.dbName).Collection(movementsCollection)
	if _, err := collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert movement record: %w", err)
	}
	return nil
}

// RecordAudit stores a stock audit record.
func (r *MongoDBRepository) RecordAudit(ctx context.Context, audit models.StockAudit) error {
	collection := r.client.Database(r.dbName).Collection(auditsCollection)
	if _, err := collection.InsertOne(ctx, audit); err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}

// SaveDailySummary saves a generated daily summary.
func (r *MongoDBRepository) SaveDailySummary(ctx context.Context, summary models.DailySummary) error {
	collection := r.client.Database(r.dbName).Collection(summariesCollection)
	if _, err := collection.InsertOne(ctx, summary); err != nil {
		return fmt.Errorf("failed to insert daily summary: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
