package models

import "time"

// MechanicSchedule is an informational calendar block created once at
// assignment time. It is not authoritative for availability.
type MechanicSchedule struct {
	ID          string    `bson:"id" json:"id"`
	MechanicID  string    `bson:"mechanic_id" json:"mechanicId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	StartTime   time.Time `bson:"start_time" json:"startTime"`
	EndTime     time.Time `bson:"end_time" json:"endTime"`
	Type        string    `bson:"type" json:"type"`
	ServiceID   string    `bson:"service_id,omitempty" json:"serviceId,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}
