package models

import "time"

// Workshop is an organizational unit owning mechanics, optionally pre-selected
// or discovered for a request.
type Workshop struct {
	ID          string    `bson:"id" json:"id"`
	AdminID     string    `bson:"admin_id" json:"adminId"`
	Name        string    `bson:"name" json:"name"`
	Address     string    `bson:"address" json:"address"`
	Latitude    float64   `bson:"latitude" json:"latitude"`
	Longitude   float64   `bson:"longitude" json:"longitude"`
	Services    []string  `bson:"services,omitempty" json:"services,omitempty"`
	IsOpen      bool      `bson:"is_open" json:"isOpen"`
	Rating      float64   `bson:"rating" json:"rating"`
	ReviewCount int       `bson:"review_count" json:"reviewCount"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// NearbyWorkshop is a discovery result: a workshop plus its distance from the
// querying user.
type NearbyWorkshop struct {
	Workshop   Workshop `json:"workshop"`
	DistanceKm float64  `json:"distanceKm"`
}
