// Package updatelog maintains the append-only progress-note trail attached to
// a service request.
package updatelog

import (
	"context"
	"time"

	mechanicRepo "roadcare/database/repository/mechanic"
	requestRepo "roadcare/database/repository/request"
	updateRepo "roadcare/database/repository/update"
	workshopRepo "roadcare/database/repository/workshop"
	"roadcare/models"
	"roadcare/services/notification"
	"roadcare/services/policy"
	"roadcare/utils"

	"github.com/google/uuid"
)

// Service appends and lists service updates.
type Service interface {
	// Append adds a progress note; only the currently assigned mechanic may write.
	Append(ctx context.Context, requestID string, actor models.Actor, message string, images []string) (*models.ServiceUpdate, error)
	// List returns a request's updates newest first, policy-gated.
	List(ctx context.Context, requestID string, actor models.Actor) ([]models.ServiceUpdate, error)
}

// DefaultService is the production Service implementation.
type DefaultService struct {
	Updates   updateRepo.UpdateRepository
	Requests  requestRepo.RequestRepository
	Workshops workshopRepo.WorkshopRepository
	Mechanics mechanicRepo.MechanicRepository
	Fanout    notification.Fanout
}

func (s *DefaultService) Append(ctx context.Context, requestID string, actor models.Actor, message string, images []string) (*models.ServiceUpdate, error) {
	if message == "" {
		return nil, utils.NewValidationError("MISSING_FIELD", "message is required")
	}

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !policy.Allowed(actor, policy.ActionAppendUpdate, policy.RequestContext{Request: req}) {
		return nil, utils.NewPermissionError("NOT_ASSIGNED_MECHANIC", "only the assigned mechanic may post updates")
	}
	if req.Status.Terminal() {
		return nil, utils.NewStateConflictError("REQUEST_CLOSED", "cannot post updates on a closed request")
	}

	upd := &models.ServiceUpdate{
		ID:               uuid.New().String(),
		ServiceRequestID: req.ID,
		MechanicID:       actor.MechanicID,
		Message:          message,
		Images:           images,
		Timestamp:        time.Now(),
	}
	if err := s.Updates.Create(ctx, upd); err != nil {
		return nil, err
	}

	s.Fanout.UpdateAppended(ctx, req, upd)
	return upd, nil
}

func (s *DefaultService) List(ctx context.Context, requestID string, actor models.Actor) ([]models.ServiceUpdate, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	rc, err := s.requestContext(ctx, req)
	if err != nil {
		return nil, err
	}
	if !policy.Allowed(actor, policy.ActionViewUpdates, rc) {
		return nil, utils.NewPermissionError("REQUEST_ACCESS_DENIED", "you do not have access to this request")
	}

	return s.Updates.ListByRequest(ctx, requestID)
}

func (s *DefaultService) getRequest(ctx context.Context, requestID string) (*models.ServiceRequest, error) {
	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		if err == requestRepo.ErrNotFound {
			return nil, utils.NewNotFoundError("REQUEST_NOT_FOUND", "service request not found")
		}
		return nil, err
	}
	return req, nil
}

func (s *DefaultService) requestContext(ctx context.Context, req *models.ServiceRequest) (policy.RequestContext, error) {
	rc := policy.RequestContext{Request: req}

	if req.WorkshopID != "" {
		ws, err := s.Workshops.GetByID(ctx, req.WorkshopID)
		if err == nil {
			rc.WorkshopAdminID = ws.AdminID
		} else if err != workshopRepo.ErrNotFound {
			return rc, err
		}
	}
	if req.MechanicID != "" {
		mech, err := s.Mechanics.GetByID(ctx, req.MechanicID)
		if err == nil {
			rc.MechanicUserID = mech.UserID
		} else if err != mechanicRepo.ErrNotFound {
			return rc, err
		}
	}
	return rc, nil
}
