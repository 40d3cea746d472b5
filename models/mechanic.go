package models

import "time"

// Availability is a mechanic's capacity state, mutually exclusive with holding
// an active assignment.
type Availability string

const (
	Available    Availability = "AVAILABLE"
	InService    Availability = "IN_SERVICE"
	NotAvailable Availability = "NOT_AVAILABLE"
)

// Mechanic is a workshop-affiliated worker assignable to one active service
// request at a time.
type Mechanic struct {
	ID           string       `bson:"id" json:"id"`
	UserID       string       `bson:"user_id" json:"userId"`
	WorkshopID   string       `bson:"workshop_id" json:"workshopId"`
	Name         string       `bson:"name" json:"name"`
	Phone        string       `bson:"phone,omitempty" json:"phone,omitempty"`
	Availability Availability `bson:"availability" json:"availability"`
	Specialties  []string     `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Rating       float64      `bson:"rating" json:"rating"`
	FCMToken     string       `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updatedAt"`
}
