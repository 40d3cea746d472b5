package models

// Role identifies the kind of authenticated actor.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleMechanic Role = "mechanic"
)

// Actor is the authenticated identity performing an operation. UserID is the
// account id from the token; for mechanics, MechanicID is the resolved
// mechanic record id.
type Actor struct {
	UserID     string
	Role       Role
	MechanicID string
}
