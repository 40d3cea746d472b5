package notificationRepo

import (
	"context"
	"errors"

	"roadcare/models"
)

// ErrNotFound is returned when no notification matches the given id and owner.
var ErrNotFound = errors.New("notification not found")

// NotificationRepository defines methods for durable notification data access.
// Rows are append-only apart from the read-state toggle.
type NotificationRepository interface {
	// Create inserts a notification row. Re-inserting an existing id is a
	// no-op, so outbox replays stay idempotent.
	Create(ctx context.Context, n *models.Notification) error
	// ListByUser returns a user's notifications, newest first. A limit <= 0
	// means no cap.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	// CountUnread recomputes the unread total for a user on demand.
	CountUnread(ctx context.Context, userID string) (int64, error)
	// SetRead toggles the read state of a notification owned by userID.
	SetRead(ctx context.Context, id, userID string, read bool) error
}
