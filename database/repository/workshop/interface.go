package workshopRepo

import (
	"context"
	"errors"

	"roadcare/models"
)

// ErrNotFound is returned when no workshop matches the lookup.
var ErrNotFound = errors.New("workshop not found")

// WorkshopRepository defines methods for workshop data access.
type WorkshopRepository interface {
	Create(ctx context.Context, ws *models.Workshop) error
	GetByID(ctx context.Context, id string) (*models.Workshop, error)
	// GetByAdminID retrieves the workshop administered by a user account.
	GetByAdminID(ctx context.Context, adminID string) (*models.Workshop, error)
	// ListOpen returns all workshops currently marked open.
	ListOpen(ctx context.Context) ([]models.Workshop, error)
}
