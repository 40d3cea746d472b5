package request

import (
	"context"

	"roadcare/models"
)

// CreateInput is the payload for submitting a new service request.
type CreateInput struct {
	WorkshopID    string         `json:"workshopId"`
	VehicleMake   string         `json:"vehicleMake" binding:"required"`
	VehicleModel  string         `json:"vehicleModel" binding:"required"`
	VehiclePlate  string         `json:"vehiclePlate"`
	IssueType     string         `json:"issueType" binding:"required"`
	Description   string         `json:"description"`
	Urgency       models.Urgency `json:"urgency"`
	PickupAddress string         `json:"pickupAddress" binding:"required"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	Images        []string       `json:"images"`
}

// LifecycleService owns the service request state machine and its timestamps.
type LifecycleService interface {
	// Create submits a new request in SUBMITTED state. With no pre-selected
	// workshop the request is left unassigned for broadcast-based discovery.
	Create(ctx context.Context, actor models.Actor, in CreateInput) (*models.ServiceRequest, error)
	// Transition moves a request along the fixed edge table. Repeating an
	// already-applied transition is an idempotent no-op.
	Transition(ctx context.Context, requestID string, target models.RequestStatus, actor models.Actor, note string) (*models.ServiceRequest, error)
	// Get returns a request the actor is allowed to view.
	Get(ctx context.Context, requestID string, actor models.Actor) (*models.ServiceRequest, error)
	// ListForActor returns the requests visible to the actor.
	ListForActor(ctx context.Context, actor models.Actor) ([]models.ServiceRequest, error)
	// SetCost updates cost fields; only the assigned mechanic may do so. A
	// zero value leaves the corresponding stored cost unchanged.
	SetCost(ctx context.Context, requestID string, actor models.Actor, estimated, final float64) (*models.ServiceRequest, error)
}
