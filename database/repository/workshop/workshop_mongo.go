package workshopRepo

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

// MongoWorkshopRepo implements WorkshopRepository using MongoDB.
type MongoWorkshopRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkshopRepo creates a new instance of WorkshopRepository using MongoDB.
func NewMongoWorkshopRepo() WorkshopRepository {
	coll := database.Collection("workshops")
	repo := &MongoWorkshopRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoWorkshopRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "admin_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "is_open", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoWorkshopRepo) Create(ctx context.Context, ws *models.Workshop) error {
	now := time.Now()
	ws.CreatedAt = now
	ws.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, ws); err != nil {
		return fmt.Errorf("failed to create workshop: %w", err)
	}
	return nil
}

func (r *MongoWorkshopRepo) GetByID(ctx context.Context, id string) (*models.Workshop, error) {
	return r.getOne(ctx, bson.M{"id": id})
}

func (r *MongoWorkshopRepo) GetByAdminID(ctx context.Context, adminID string) (*models.Workshop, error) {
	return r.getOne(ctx, bson.M{"admin_id": adminID})
}

func (r *MongoWorkshopRepo) getOne(ctx context.Context, filter bson.M) (*models.Workshop, error) {
	var ws models.Workshop
	if err := r.coll.FindOne(ctx, filter).Decode(&ws); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch workshop: %w", err)
	}
	return &ws, nil
}

func (r *MongoWorkshopRepo) ListOpen(ctx context.Context) ([]models.Workshop, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"is_open": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list open workshops: %w", err)
	}
	defer cursor.Close(ctx)

	var workshops []models.Workshop
	if err := cursor.All(ctx, &workshops); err != nil {
		return nil, fmt.Errorf("failed to decode workshops: %w", err)
	}
	return workshops, nil
}
