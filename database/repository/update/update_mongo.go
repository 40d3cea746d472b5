package updateRepo

import (
	"context"
	"fmt"
	"time"

	"roadcare/database"
	"roadcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUpdateRepo implements UpdateRepository using MongoDB.
type MongoUpdateRepo struct {
	coll *mongo.Collection
}

// NewMongoUpdateRepo creates a new instance of UpdateRepository using MongoDB.
func NewMongoUpdateRepo() UpdateRepository {
	coll := database.Collection("service_updates")
	repo := &MongoUpdateRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoUpdateRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "service_request_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoUpdateRepo) Create(ctx context.Context, upd *models.ServiceUpdate) error {
	if upd.Timestamp.IsZero() {
		upd.Timestamp = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, upd); err != nil {
		return fmt.Errorf("failed to create service update: %w", err)
	}
	return nil
}

func (r *MongoUpdateRepo) ListByRequest(ctx context.Context, requestID string) ([]models.ServiceUpdate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"service_request_id": requestID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates for request %s: %w", requestID, err)
	}
	defer cursor.Close(ctx)

	var updates []models.ServiceUpdate
	if err := cursor.All(ctx, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode service updates: %w", err)
	}
	return updates, nil
}
