package models

import "time"

// ServiceUpdate is an append-only progress note attached to a service request,
// ordered descending by timestamp for display.
type ServiceUpdate struct {
	ID               string    `bson:"id" json:"id"`
	ServiceRequestID string    `bson:"service_request_id" json:"serviceRequestId"`
	MechanicID       string    `bson:"mechanic_id" json:"mechanicId"`
	Message          string    `bson:"message" json:"message"`
	Images           []string  `bson:"images,omitempty" json:"images,omitempty"`
	Timestamp        time.Time `bson:"timestamp" json:"timestamp"`
}
