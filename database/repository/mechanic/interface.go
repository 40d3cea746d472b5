package mechanicRepo

import (
	"context"
	"errors"

	"roadcare/models"
)

// ErrNotFound is returned when no mechanic matches the given id.
var ErrNotFound = errors.New("mechanic not found")

// ErrAvailabilityChanged is returned by SetAvailabilityIf when the stored
// availability no longer matches the expected one.
var ErrAvailabilityChanged = errors.New("mechanic availability changed")

// MechanicRepository defines methods for mechanic data access.
type MechanicRepository interface {
	// Create inserts a new mechanic document.
	Create(ctx context.Context, mech *models.Mechanic) error
	// GetByID retrieves a mechanic by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Mechanic, error)
	// GetByUserID retrieves the mechanic record bound to a user account.
	GetByUserID(ctx context.Context, userID string) (*models.Mechanic, error)
	// ListByWorkshop returns all mechanics of a workshop.
	ListByWorkshop(ctx context.Context, workshopID string) ([]models.Mechanic, error)
	// SetAvailabilityIf flips availability in a single conditional write; it
	// returns ErrAvailabilityChanged when the stored value is no longer `from`.
	SetAvailabilityIf(ctx context.Context, id string, from, to models.Availability) error
}
