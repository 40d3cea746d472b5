// Package policy centralizes (actor, resource) -> allowed decisions so
// ownership checks live in one unit-testable place instead of per endpoint.
package policy

import "roadcare/models"

// Action names an operation on a service request or its attachments.
type Action string

const (
	ActionViewRequest  Action = "request:view"
	ActionCancel       Action = "request:cancel"
	ActionAppendUpdate Action = "update:append"
	ActionViewUpdates  Action = "update:view"
)

// RequestContext carries the ownership facts needed to decide access to a
// service request: the request itself, the admin of its owning workshop (empty
// when unassigned) and the user account of its assigned mechanic (empty when
// unassigned).
type RequestContext struct {
	Request         *models.ServiceRequest
	WorkshopAdminID string
	MechanicUserID  string
}

// Allowed reports whether the actor may perform the action on the request.
// Access is ownership based: the customer who submitted the request, the admin
// of its workshop, and the assigned mechanic.
func Allowed(actor models.Actor, action Action, rc RequestContext) bool {
	if rc.Request == nil {
		return false
	}

	isCustomer := actor.Role == models.RoleCustomer && actor.UserID == rc.Request.CustomerID
	isAdmin := actor.Role == models.RoleAdmin && rc.WorkshopAdminID != "" && actor.UserID == rc.WorkshopAdminID
	isAssignedMechanic := actor.Role == models.RoleMechanic &&
		rc.Request.MechanicID != "" && actor.MechanicID == rc.Request.MechanicID

	switch action {
	case ActionViewRequest, ActionViewUpdates:
		return isCustomer || isAdmin || isAssignedMechanic
	case ActionCancel:
		return isCustomer || isAssignedMechanic
	case ActionAppendUpdate:
		return isAssignedMechanic
	default:
		return false
	}
}
