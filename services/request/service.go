package request

import (
	"context"
	"time"

	mechanicRepo "roadcare/database/repository/mechanic"
	requestRepo "roadcare/database/repository/request"
	workshopRepo "roadcare/database/repository/workshop"
	"roadcare/models"
	"roadcare/services/email"
	"roadcare/services/notification"
	"roadcare/services/outbox"
	"roadcare/services/policy"
	"roadcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultLifecycleService is the production LifecycleService implementation.
type DefaultLifecycleService struct {
	Requests  requestRepo.RequestRepository
	Mechanics mechanicRepo.MechanicRepository
	Workshops workshopRepo.WorkshopRepository
	Fanout    notification.Fanout
	Email     email.Sender
	Outbox    outbox.Queue
}

func (s *DefaultLifecycleService) Create(ctx context.Context, actor models.Actor, in CreateInput) (*models.ServiceRequest, error) {
	if in.IssueType == "" {
		return nil, utils.NewValidationError("MISSING_FIELD", "issueType is required")
	}
	if in.PickupAddress == "" {
		return nil, utils.NewValidationError("MISSING_FIELD", "pickupAddress is required")
	}
	if in.Urgency == "" {
		in.Urgency = models.UrgencyMedium
	}

	var ws *models.Workshop
	if in.WorkshopID != "" {
		var err error
		ws, err = s.Workshops.GetByID(ctx, in.WorkshopID)
		if err != nil {
			if err == workshopRepo.ErrNotFound {
				return nil, utils.NewNotFoundError("WORKSHOP_NOT_FOUND", "selected workshop does not exist")
			}
			return nil, err
		}
	}

	req := &models.ServiceRequest{
		ID:            uuid.New().String(),
		CustomerID:    actor.UserID,
		WorkshopID:    in.WorkshopID,
		VehicleMake:   in.VehicleMake,
		VehicleModel:  in.VehicleModel,
		VehiclePlate:  in.VehiclePlate,
		IssueType:     in.IssueType,
		Description:   in.Description,
		Urgency:       in.Urgency,
		PickupAddress: in.PickupAddress,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		Images:        in.Images,
		Status:        models.StatusSubmitted,
		CreatedAt:     time.Now(),
	}

	if err := s.Requests.Create(ctx, req); err != nil {
		return nil, err
	}

	if ws == nil {
		// No workshop pre-selected: leave unassigned and announce to the
		// broadcast room for discovery.
		s.Fanout.RequestBroadcast(req)
		return req, nil
	}

	s.Fanout.RequestReceived(ctx, req, ws.AdminID)
	if err := s.Email.SendRequestReceived(ctx, ws.AdminID, req); err != nil {
		utils.GetLogger().Warn("lifecycle: request-received email failed",
			zap.String("requestId", req.ID), zap.Error(err))
		if s.Outbox != nil {
			if qErr := s.Outbox.EnqueueEmailSend(ctx, outbox.EmailSendPayload{AdminID: ws.AdminID, RequestID: req.ID}); qErr != nil {
				utils.GetLogger().Error("lifecycle: failed to enqueue email replay", zap.Error(qErr))
			}
		}
	}
	return req, nil
}

func (s *DefaultLifecycleService) Transition(ctx context.Context, requestID string, target models.RequestStatus, actor models.Actor, note string) (*models.ServiceRequest, error) {
	if !knownStatus(target) {
		return nil, utils.NewValidationError("INVALID_STATUS", "unknown target status")
	}

	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		if err == requestRepo.ErrNotFound {
			return nil, utils.NewNotFoundError("REQUEST_NOT_FOUND", "service request not found")
		}
		return nil, err
	}

	if err := s.authorizeTransition(req, target, actor); err != nil {
		return nil, err
	}

	// Repeating an already-applied transition is a no-op, not an error.
	if req.Status == target {
		return req, nil
	}

	if !EdgeAllowed(req.Status, target) {
		return nil, utils.NewStateConflictError("INVALID_TRANSITION",
			"cannot move request from "+string(req.Status)+" to "+string(target))
	}

	updated, err := s.Requests.CompareAndSetStatus(ctx, requestID, req.Status, target, StampField(target), time.Now())
	if err != nil {
		if err == requestRepo.ErrStatusChanged {
			return nil, utils.NewStateConflictError("INVALID_TRANSITION", "request status changed concurrently")
		}
		if err == requestRepo.ErrNotFound {
			return nil, utils.NewNotFoundError("REQUEST_NOT_FOUND", "service request not found")
		}
		return nil, err
	}

	if target == models.StatusCompleted || (target == models.StatusCancelled && updated.MechanicID != "") {
		s.releaseMechanic(ctx, updated)
	}

	s.Fanout.StatusChanged(ctx, updated, note)
	return updated, nil
}

// authorizeTransition enforces the role constraints of the edge table.
// ASSIGNED is set only by the AssignmentCoordinator; progress states require
// the assigned mechanic; cancellation is owner- or mechanic-initiated.
func (s *DefaultLifecycleService) authorizeTransition(req *models.ServiceRequest, target models.RequestStatus, actor models.Actor) error {
	switch target {
	case models.StatusAssigned:
		return utils.NewPermissionError("ASSIGNMENT_VIA_COORDINATOR", "assignment is performed by the workshop admin through the assign endpoint")
	case models.StatusInProgress, models.StatusReached, models.StatusCompleted:
		if actor.Role != models.RoleMechanic || actor.MechanicID == "" || actor.MechanicID != req.MechanicID {
			return utils.NewPermissionError("NOT_ASSIGNED_MECHANIC", "only the assigned mechanic may report progress")
		}
	case models.StatusCancelled:
		if !policy.Allowed(actor, policy.ActionCancel, policy.RequestContext{Request: req}) {
			return utils.NewPermissionError("CANCEL_NOT_ALLOWED", "only the customer or the assigned mechanic may cancel")
		}
	case models.StatusSubmitted:
		return utils.NewStateConflictError("INVALID_TRANSITION", "a request cannot return to SUBMITTED")
	}
	return nil
}

// releaseMechanic flips the mechanic back to AVAILABLE after a terminal
// transition. The request state is already committed, so a failed flip is
// queued for replay rather than rolled back.
func (s *DefaultLifecycleService) releaseMechanic(ctx context.Context, req *models.ServiceRequest) {
	logger := utils.GetLogger()
	err := s.Mechanics.SetAvailabilityIf(ctx, req.MechanicID, models.InService, models.Available)
	if err == nil {
		return
	}
	if err == mechanicRepo.ErrAvailabilityChanged {
		logger.Debug("lifecycle: mechanic availability already moved", zap.String("mechanicId", req.MechanicID))
		return
	}
	logger.Error("lifecycle: failed to release mechanic",
		zap.String("mechanicId", req.MechanicID), zap.String("requestId", req.ID), zap.Error(err))
	if s.Outbox != nil {
		if qErr := s.Outbox.EnqueueMechanicRelease(ctx, outbox.MechanicReleasePayload{MechanicID: req.MechanicID, RequestID: req.ID}); qErr != nil {
			logger.Error("lifecycle: failed to enqueue mechanic release replay", zap.Error(qErr))
		}
	}
}

func (s *DefaultLifecycleService) Get(ctx context.Context, requestID string, actor models.Actor) (*models.ServiceRequest, error) {
	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		if err == requestRepo.ErrNotFound {
			return nil, utils.NewNotFoundError("REQUEST_NOT_FOUND", "service request not found")
		}
		return nil, err
	}

	rc, err := s.requestContext(ctx, req)
	if err != nil {
		return nil, err
	}
	if !policy.Allowed(actor, policy.ActionViewRequest, rc) {
		return nil, utils.NewPermissionError("REQUEST_ACCESS_DENIED", "you do not have access to this request")
	}
	return req, nil
}

func (s *DefaultLifecycleService) ListForActor(ctx context.Context, actor models.Actor) ([]models.ServiceRequest, error) {
	switch actor.Role {
	case models.RoleCustomer:
		return s.Requests.ListByCustomer(ctx, actor.UserID)
	case models.RoleMechanic:
		return s.Requests.ListByMechanic(ctx, actor.MechanicID)
	case models.RoleAdmin:
		ws, err := s.Workshops.GetByAdminID(ctx, actor.UserID)
		if err != nil {
			if err == workshopRepo.ErrNotFound {
				return s.Requests.ListUnassigned(ctx)
			}
			return nil, err
		}
		return s.Requests.ListByWorkshop(ctx, ws.ID)
	}
	return nil, utils.NewPermissionError("UNKNOWN_ROLE", "unknown actor role")
}

func (s *DefaultLifecycleService) SetCost(ctx context.Context, requestID string, actor models.Actor, estimated, final float64) (*models.ServiceRequest, error) {
	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		if err == requestRepo.ErrNotFound {
			return nil, utils.NewNotFoundError("REQUEST_NOT_FOUND", "service request not found")
		}
		return nil, err
	}
	if actor.Role != models.RoleMechanic || actor.MechanicID != req.MechanicID {
		return nil, utils.NewPermissionError("NOT_ASSIGNED_MECHANIC", "only the assigned mechanic may set cost")
	}
	if req.Status == models.StatusCancelled {
		return nil, utils.NewStateConflictError("REQUEST_CANCELLED", "cannot set cost on a cancelled request")
	}

	if err := s.Requests.SetCost(ctx, requestID, estimated, final); err != nil {
		return nil, err
	}
	return s.Requests.GetByID(ctx, requestID)
}

// requestContext assembles the ownership facts the policy needs.
func (s *DefaultLifecycleService) requestContext(ctx context.Context, req *models.ServiceRequest) (policy.RequestContext, error) {
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
