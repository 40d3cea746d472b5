package mechanicRepo

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

// MongoMechanicRepo implements MechanicRepository using MongoDB.
type MongoMechanicRepo struct {
	coll *mongo.Collection
}

// NewMongoMechanicRepo creates a new instance of MechanicRepository using MongoDB.
func NewMongoMechanicRepo() MechanicRepository {
	coll := database.Collection("mechanics")
	repo := &MongoMechanicRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoMechanicRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "workshop_id", Value: 1}, {Key: "availability", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoMechanicRepo) Create(ctx context.Context, mech *models.Mechanic) error {
	now := time.Now()
	mech.CreatedAt = now
	mech.UpdatedAt = now
	if mech.Availability == "" {
		mech.Availability = models.Available
	}

	if _, err := r.coll.InsertOne(ctx, mech); err != nil {
		return fmt.Errorf("failed to create mechanic: %w", err)
	}
	return nil
}

func (r *MongoMechanicRepo) GetByID(ctx context.Context, id string) (*models.Mechanic, error) {
	return r.getOne(ctx, bson.M{"id": id})
}

func (r *MongoMechanicRepo) GetByUserID(ctx context.Context, userID string) (*models.Mechanic, error) {
	return r.getOne(ctx, bson.M{"user_id": userID})
}

func (r *MongoMechanicRepo) getOne(ctx context.Context, filter bson.M) (*models.Mechanic, error) {
	var mech models.Mechanic
	if err := r.coll.FindOne(ctx, filter).Decode(&mech); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch mechanic: %w", err)
	}
	return &mech, nil
}

func (r *MongoMechanicRepo) ListByWorkshop(ctx context.Context, workshopID string) ([]models.Mechanic, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"workshop_id": workshopID})
	if err != nil {
		return nil, fmt.Errorf("failed to list mechanics for workshop %s: %w", workshopID, err)
	}
	defer cursor.Close(ctx)

	var mechanics []models.Mechanic
	if err := cursor.All(ctx, &mechanics); err != nil {
		return nil, fmt.Errorf("failed to decode mechanics: %w", err)
	}
	return mechanics, nil
}

// SetAvailabilityIf performs a single conditional update guarded on the current
// availability, so the flip happens exactly once per transition.
func (r *MongoMechanicRepo) SetAvailabilityIf(ctx context.Context, id string, from, to models.Availability) error {
	filter := bson.M{"id": id, "availability": from}
	update := bson.M{"$set": bson.M{"availability": to, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update availability of mechanic %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrAvailabilityChanged
	}
	return nil
}
