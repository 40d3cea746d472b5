package assignmentRepo

import (
	"context"
	"errors"
	"time"

	"roadcare/models"
)

// ErrRequestNotAssignable is returned when the request is no longer SUBMITTED.
var ErrRequestNotAssignable = errors.New("service request is no longer assignable")

// ErrMechanicNotAvailable is returned when the mechanic is no longer AVAILABLE.
var ErrMechanicNotAvailable = errors.New("mechanic is no longer available")

// AssignmentRepository executes the assignment write unit.
type AssignmentRepository interface {
	// AssignTx atomically binds the mechanic to the request: it sets the
	// request's mechanic_id, workshop_id, status=ASSIGNED and assigned_at, and
	// flips the mechanic AVAILABLE -> IN_SERVICE. Both writes are guarded on
	// the expected prior state and committed together; when either guard fails
	// nothing is written and the matching sentinel error is returned.
	AssignTx(ctx context.Context, requestID, mechanicID, workshopID string, at time.Time) (*models.ServiceRequest, error)
}
