package requestRepo

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

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of RequestRepository using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	coll := database.Collection("service_requests")
	repo := &MongoRequestRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "workshop_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "mechanic_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	now := time.Now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create service request: %w", err)
	}
	return nil
}

func (r *MongoRequestRepo) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service request with id %s: %w", id, err)
	}
	return &req, nil
}

func (r *MongoRequestRepo) list(ctx context.Context, filter bson.M) ([]models.ServiceRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list service requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode service requests: %w", err)
	}
	return requests, nil
}

func (r *MongoRequestRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.ServiceRequest, error) {
	return r.list(ctx, bson.M{"customer_id": customerID})
}

func (r *MongoRequestRepo) ListByWorkshop(ctx context.Context, workshopID string) ([]models.ServiceRequest, error) {
	return r.list(ctx, bson.M{"workshop_id": workshopID})
}

func (r *MongoRequestRepo) ListByMechanic(ctx context.Context, mechanicID string) ([]models.ServiceRequest, error) {
	return r.list(ctx, bson.M{"mechanic_id": mechanicID})
}

func (r *MongoRequestRepo) ListUnassigned(ctx context.Context) ([]models.ServiceRequest, error) {
	return r.list(ctx, bson.M{"status": models.StatusSubmitted, "workshop_id": bson.M{"$in": bson.A{nil, ""}}})
}

// CompareAndSetStatus performs a single conditional update guarded on the
// current status, so two concurrent transitions can never both succeed.
func (r *MongoRequestRepo) CompareAndSetStatus(ctx context.Context, id string, from, to models.RequestStatus, stampField string, at time.Time) (*models.ServiceRequest, error) {
	set := bson.M{"status": to, "updated_at": at}
	if stampField != "" {
		set[stampField] = at
	}

	filter := bson.M{"id": id, "status": from}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ServiceRequest
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// Distinguish a missing document from a lost status race.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update status of request %s: %w", id, err)
	}
	return &updated, nil
}

func (r *MongoRequestRepo) SetCost(ctx context.Context, id string, estimated, final float64) error {
	set := bson.M{"updated_at": time.Now()}
	if estimated > 0 {
		set["estimated_cost"] = estimated
	}
	if final > 0 {
		set["final_cost"] = final
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update cost of request %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
