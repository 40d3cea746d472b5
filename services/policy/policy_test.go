package policy

import (
	"testing"

	"roadcare/models"

	"github.com/stretchr/testify/assert"
)

func requestContext() RequestContext {
	return RequestContext{
		Request: &models.ServiceRequest{
			ID:         "req-1",
			CustomerID: "cust-1",
			WorkshopID: "ws-1",
			MechanicID: "mech-1",
		},
		WorkshopAdminID: "admin-1",
		MechanicUserID:  "mech-user-1",
	}
}

func TestAllowedView(t *testing.T) {
	rc := requestContext()

	owner := models.Actor{UserID: "cust-1", Role: models.RoleCustomer}
	admin := models.Actor{UserID: "admin-1", Role: models.RoleAdmin}
	mechanic := models.Actor{UserID: "mech-user-1", Role: models.RoleMechanic, MechanicID: "mech-1"}

	assert.True(t, Allowed(owner, ActionViewRequest, rc))
	assert.True(t, Allowed(admin, ActionViewRequest, rc))
	assert.True(t, Allowed(mechanic, ActionViewRequest, rc))
	assert.True(t, Allowed(owner, ActionViewUpdates, rc))

	stranger := models.Actor{UserID: "someone-else", Role: models.RoleCustomer}
	otherAdmin := models.Actor{UserID: "other-admin", Role: models.RoleAdmin}
	otherMechanic := models.Actor{UserID: "x", Role: models.RoleMechanic, MechanicID: "mech-2"}

	assert.False(t, Allowed(stranger, ActionViewRequest, rc))
	assert.False(t, Allowed(otherAdmin, ActionViewRequest, rc))
	assert.False(t, Allowed(otherMechanic, ActionViewRequest, rc))
}

func TestAllowedCancel(t *testing.T) {
	rc := requestContext()

	assert.True(t, Allowed(models.Actor{UserID: "cust-1", Role: models.RoleCustomer}, ActionCancel, rc))
	assert.True(t, Allowed(models.Actor{Role: models.RoleMechanic, MechanicID: "mech-1"}, ActionCancel, rc))

	// Admins observe, they do not cancel.
	assert.False(t, Allowed(models.Actor{UserID: "admin-1", Role: models.RoleAdmin}, ActionCancel, rc))
}

func TestAllowedAppendUpdate(t *testing.T) {
	rc := requestContext()

	assert.True(t, Allowed(models.Actor{Role: models.RoleMechanic, MechanicID: "mech-1"}, ActionAppendUpdate, rc))
	assert.False(t, Allowed(models.Actor{UserID: "cust-1", Role: models.RoleCustomer}, ActionAppendUpdate, rc))
	assert.False(t, Allowed(models.Actor{UserID: "admin-1", Role: models.RoleAdmin}, ActionAppendUpdate, rc))
	assert.False(t, Allowed(models.Actor{Role: models.RoleMechanic, MechanicID: "mech-2"}, ActionAppendUpdate, rc))
}

func TestAllowedUnassignedRequest(t *testing.T) {
	rc := RequestContext{
		Request: &models.ServiceRequest{ID: "req-2", CustomerID: "cust-1"},
	}

	// No workshop admin yet and no mechanic: only the customer can see it.
	assert.True(t, Allowed(models.Actor{UserID: "cust-1", Role: models.RoleCustomer}, ActionViewRequest, rc))
	assert.False(t, Allowed(models.Actor{UserID: "admin-1", Role: models.RoleAdmin}, ActionViewRequest, rc))
	assert.False(t, Allowed(models.Actor{Role: models.RoleMechanic, MechanicID: "mech-1"}, ActionViewRequest, rc))
}

func TestAllowedNilRequest(t *testing.T) {
	assert.False(t, Allowed(models.Actor{UserID: "cust-1", Role: models.RoleCustomer}, ActionViewRequest, RequestContext{}))
}

func TestAllowedUnknownAction(t *testing.T) {
	rc := requestContext()
	assert.False(t, Allowed(models.Actor{UserID: "cust-1", Role: models.RoleCustomer}, Action("request:delete"), rc))
}
