package scheduleRepo

import (
	"context"
	"time"

	"roadcare/models"
)

// ScheduleRepository defines methods for mechanic schedule data access.
type ScheduleRepository interface {
	// Create inserts a schedule block. Re-inserting a block with an id that
	// already exists is a no-op, so outbox replays stay idempotent.
	Create(ctx context.Context, block *models.MechanicSchedule) error
	// ListByMechanic returns blocks overlapping the [from, to) window.
	ListByMechanic(ctx context.Context, mechanicID string, from, to time.Time) ([]models.MechanicSchedule, error)
}
