package assignmentRepo

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

// MongoAssignmentRepo implements AssignmentRepository using a MongoDB
// multi-document transaction across the mechanics and service_requests
// collections.
type MongoAssignmentRepo struct {
	client    *mongo.Client
	requests  *mongo.Collection
	mechanics *mongo.Collection
}

// NewMongoAssignmentRepo creates a new instance of AssignmentRepository using MongoDB.
func NewMongoAssignmentRepo() AssignmentRepository {
	return &MongoAssignmentRepo{
		client:    database.MongoClient,
		requests:  database.Collection("service_requests"),
		mechanics: database.Collection("mechanics"),
	}
}

func (r *MongoAssignmentRepo) AssignTx(ctx context.Context, requestID, mechanicID, workshopID string, at time.Time) (*models.ServiceRequest, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		mechFilter := bson.M{"id": mechanicID, "availability": models.Available}
		mechUpdate := bson.M{"$set": bson.M{"availability": models.InService, "updated_at": at}}
		mechResult, err := r.mechanics.UpdateOne(sc, mechFilter, mechUpdate)
		if err != nil {
			return nil, fmt.Errorf("failed to flip mechanic %s: %w", mechanicID, err)
		}
		if mechResult.MatchedCount == 0 {
			return nil, ErrMechanicNotAvailable
		}

		reqFilter := bson.M{"id": requestID, "status": models.StatusSubmitted}
		reqUpdate := bson.M{"$set": bson.M{
			"mechanic_id": mechanicID,
			"workshop_id": workshopID,
			"status":      models.StatusAssigned,
			"assigned_at": at,
			"updated_at":  at,
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		var updated models.ServiceRequest
		err = r.requests.FindOneAndUpdate(sc, reqFilter, reqUpdate, opts).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			// Aborting the transaction also rolls the mechanic flip back.
			return nil, ErrRequestNotAssignable
		}
		if err != nil {
			return nil, fmt.Errorf("failed to assign request %s: %w", requestID, err)
		}
		return &updated, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.ServiceRequest), nil
}
