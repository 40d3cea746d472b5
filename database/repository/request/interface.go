package requestRepo

import (
	"context"
	"errors"
	"time"

	"roadcare/models"
)

// ErrNotFound is returned when no service request matches the given id.
var ErrNotFound = errors.New("service request not found")

// ErrStatusChanged is returned by CompareAndSetStatus when the stored status no
// longer matches the expected one.
var ErrStatusChanged = errors.New("service request status changed")

// RequestRepository defines methods for service request data access.
type RequestRepository interface {
	// Create inserts a new service request document.
	Create(ctx context.Context, req *models.ServiceRequest) error
	// GetByID retrieves a request by its unique ID.
	GetByID(ctx context.Context, id string) (*models.ServiceRequest, error)
	// ListByCustomer returns all requests submitted by a customer, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]models.ServiceRequest, error)
	// ListByWorkshop returns all requests attached to a workshop, newest first.
	ListByWorkshop(ctx context.Context, workshopID string) ([]models.ServiceRequest, error)
	// ListByMechanic returns all requests attached to a mechanic, newest first.
	ListByMechanic(ctx context.Context, mechanicID string) ([]models.ServiceRequest, error)
	// ListUnassigned returns SUBMITTED requests without a workshop, newest first.
	ListUnassigned(ctx context.Context) ([]models.ServiceRequest, error)
	// CompareAndSetStatus moves a request from one status to another in a single
	// conditional write, stamping the stage timestamp field (bson name) when
	// stampField is non-empty. It returns ErrStatusChanged when the stored
	// status is no longer `from`.
	CompareAndSetStatus(ctx context.Context, id string, from, to models.RequestStatus, stampField string, at time.Time) (*models.ServiceRequest, error)
	// SetCost updates the cost fields of a request. A zero value leaves the
	// corresponding stored cost unchanged, so callers can set either field
	// independently; costs are never cleared once reported.
	SetCost(ctx context.Context, id string, estimated, final float64) error
}
