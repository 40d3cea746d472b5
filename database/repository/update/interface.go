package updateRepo

import (
	"context"

	"roadcare/models"
)

// UpdateRepository defines methods for the append-only service update trail.
type UpdateRepository interface {
	// Create appends a service update. Updates are never modified or deleted.
	Create(ctx context.Context, upd *models.ServiceUpdate) error
	// ListByRequest returns a request's updates, newest first.
	ListByRequest(ctx context.Context, requestID string) ([]models.ServiceUpdate, error)
}
