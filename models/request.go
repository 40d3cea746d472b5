package models

import "time"

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	StatusSubmitted  RequestStatus = "SUBMITTED"
	StatusAssigned   RequestStatus = "ASSIGNED"
	StatusInProgress RequestStatus = "IN_PROGRESS"
	StatusReached    RequestStatus = "REACHED"
	StatusCompleted  RequestStatus = "COMPLETED"
	StatusCancelled  RequestStatus = "CANCELLED"
)

// Terminal reports whether no further status mutation is permitted.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Urgency of a service request.
type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyHigh   Urgency = "HIGH"
)

// ServiceRequest is a customer-submitted roadside/vehicle-service job tracked
// through a fixed lifecycle. Stage timestamps are each set at most once;
// AssignedAt is set exactly when MechanicID is set.
type ServiceRequest struct {
	ID            string        `bson:"id" json:"id"`
	CustomerID    string        `bson:"customer_id" json:"customerId"`
	WorkshopID    string        `bson:"workshop_id,omitempty" json:"workshopId,omitempty"`
	MechanicID    string        `bson:"mechanic_id,omitempty" json:"mechanicId,omitempty"`
	VehicleMake   string        `bson:"vehicle_make" json:"vehicleMake"`
	VehicleModel  string        `bson:"vehicle_model" json:"vehicleModel"`
	VehiclePlate  string        `bson:"vehicle_plate,omitempty" json:"vehiclePlate,omitempty"`
	IssueType     string        `bson:"issue_type" json:"issueType"`
	Description   string        `bson:"description" json:"description"`
	Urgency       Urgency       `bson:"urgency" json:"urgency"`
	PickupAddress string        `bson:"pickup_address" json:"pickupAddress"`
	Latitude      float64       `bson:"latitude" json:"latitude"`
	Longitude     float64       `bson:"longitude" json:"longitude"`
	Images        []string      `bson:"images,omitempty" json:"images,omitempty"`
	Status        RequestStatus `bson:"status" json:"status"`
	EstimatedCost float64       `bson:"estimated_cost,omitempty" json:"estimatedCost,omitempty"`
	FinalCost     float64       `bson:"final_cost,omitempty" json:"finalCost,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
	AssignedAt    *time.Time    `bson:"assigned_at,omitempty" json:"assignedAt,omitempty"`
	StartedAt     *time.Time    `bson:"started_at,omitempty" json:"startedAt,omitempty"`
	ReachedAt     *time.Time    `bson:"reached_at,omitempty" json:"reachedAt,omitempty"`
	CompletedAt   *time.Time    `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updatedAt"`
}
