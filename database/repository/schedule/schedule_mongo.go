package scheduleRepo

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

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo creates a new instance of ScheduleRepository using MongoDB.
func NewMongoScheduleRepo() ScheduleRepository {
	coll := database.Collection("mechanic_schedules")
	repo := &MongoScheduleRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoScheduleRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mechanic_id", Value: 1}, {Key: "start_time", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoScheduleRepo) Create(ctx context.Context, block *models.MechanicSchedule) error {
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, block)
	if mongo.IsDuplicateKeyError(err) {
		// The block was already written by an earlier attempt.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create schedule block: %w", err)
	}
	return nil
}

func (r *MongoScheduleRepo) ListByMechanic(ctx context.Context, mechanicID string, from, to time.Time) ([]models.MechanicSchedule, error) {
	filter := bson.M{
		"mechanic_id": mechanicID,
		"start_time":  bson.M{"$lt": to},
		"end_time":    bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule blocks for mechanic %s: %w", mechanicID, err)
	}
	defer cursor.Close(ctx)

	var blocks []models.MechanicSchedule
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode schedule blocks: %w", err)
	}
	return blocks, nil
}
