package models

import "time"

// Notification is a durable per-recipient row written by lifecycle and
// assignment events. Mutated only via the read-state toggle, never deleted.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	Type      string    `bson:"type" json:"type"`
	RelatedID string    `bson:"related_id,omitempty" json:"relatedId,omitempty"`
	IsRead    bool      `bson:"is_read" json:"isRead"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
