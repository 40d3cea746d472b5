// Package assignment binds a mechanic to a service request, flips the
// mechanic's availability and writes the informational schedule block.
package assignment

import (
	"context"
	"time"

	assignmentRepo "roadcare/database/repository/assignment"
	mechanicRepo "roadcare/database/repository/mechanic"
	requestRepo "roadcare/database/repository/request"
	scheduleRepo "roadcare/database/repository/schedule"
	workshopRepo "roadcare/database/repository/workshop"
	"roadcare/models"
	"roadcare/services/notification"
	"roadcare/services/outbox"
	"roadcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// scheduleBlockDuration is the fixed length of the calendar block created at
// assignment time. A deliberate heuristic, not a dynamic estimate.
const scheduleBlockDuration = 2 * time.Hour

// Coordinator assigns mechanics to service requests.
type Coordinator interface {
	Assign(ctx context.Context, requestID, mechanicID, adminID string) (*models.ServiceRequest, error)
}

// DefaultCoordinator is the production Coordinator implementation.
type DefaultCoordinator struct {
	Requests    requestRepo.RequestRepository
	Mechanics   mechanicRepo.MechanicRepository
	Workshops   workshopRepo.WorkshopRepository
	Assignments assignmentRepo.AssignmentRepository
	Schedules   scheduleRepo.ScheduleRepository
	Fanout      notification.Fanout
	Outbox      outbox.Queue
}

// Assign binds the mechanic to the request as one atomic unit, then runs the
// best-effort side channels (schedule block, notifications). Side-channel
// failures are logged and queued for replay; they never roll back the
// committed assignment.
func (c *DefaultCoordinator) Assign(ctx context.Context, requestID, mechanicID, adminID string) (*models.ServiceRequest, error) {
	mech, err := c.Mechanics.GetByID(ctx, mechanicID)
	if err != nil {
		if err == mechanicRepo.ErrNotFound {
			return nil, utils.NewNotFoundError("MECHANIC_NOT_FOUND", "mechanic not found")
		}
		return nil, err
	}

	ws, err := c.Workshops.GetByAdminID(ctx, adminID)
	if err != nil {
		if err == workshopRepo.ErrNotFound {
			return nil, utils.NewPermissionError("NOT_WORKSHOP_ADMIN", "acting user does not administer a workshop")
		}
		return nil, err
	}
	if mech.WorkshopID != ws.ID {
		return nil, utils.NewPermissionError("MECHANIC_NOT_IN_WORKSHOP", "mechanic does not belong to your workshop")
	}

	if mech.Availability != models.Available {
		return nil, utils.NewStateConflictError("MECHANIC_NOT_AVAILABLE", "mechanic is not available")
	}

	req, err := c.Requests.GetByID(ctx, requestID)
	if err != nil {
		if err == requestRepo.ErrNotFound {
			return nil, utils.NewNotFoundError("REQUEST_NOT_FOUND", "service request not found")
		}
		return nil, err
	}
	if req.Status != models.StatusSubmitted {
		return nil, utils.NewStateConflictError("REQUEST_ALREADY_ASSIGNED", "request is no longer awaiting assignment")
	}

	workshopID := req.WorkshopID
	if workshopID == "" {
		workshopID = ws.ID
	}

	now := time.Now()
	updated, err := c.Assignments.AssignTx(ctx, requestID, mechanicID, workshopID, now)
	if err != nil {
		switch err {
		case assignmentRepo.ErrMechanicNotAvailable:
			return nil, utils.NewStateConflictError("MECHANIC_NOT_AVAILABLE", "mechanic is not available")
		case assignmentRepo.ErrRequestNotAssignable:
			return nil, utils.NewStateConflictError("REQUEST_ALREADY_ASSIGNED", "request is no longer awaiting assignment")
		}
		return nil, err
	}

	c.createScheduleBlock(ctx, updated, mech, now)
	c.Fanout.RequestAssigned(ctx, updated, mech)

	return updated, nil
}

func (c *DefaultCoordinator) createScheduleBlock(ctx context.Context, req *models.ServiceRequest, mech *models.Mechanic, now time.Time) {
	block := models.MechanicSchedule{
		ID:          uuid.New().String(),
		MechanicID:  mech.ID,
		Title:       "Service call: " + req.IssueType,
		Description: req.PickupAddress,
		StartTime:   now,
		EndTime:     now.Add(scheduleBlockDuration),
		Type:        "service",
		ServiceID:   req.ID,
		CreatedAt:   now,
	}

	if err := c.Schedules.Create(ctx, &block); err != nil {
		utils.GetLogger().Error("assignment: failed to create schedule block",
			zap.String("requestId", req.ID), zap.String("mechanicId", mech.ID), zap.Error(err))
		if c.Outbox != nil {
			if qErr := c.Outbox.EnqueueScheduleCreate(ctx, block); qErr != nil {
				utils.GetLogger().Error("assignment: failed to enqueue schedule replay", zap.Error(qErr))
			}
		}
	}
}
