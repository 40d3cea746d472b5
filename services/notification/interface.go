package notification

import (
	"context"

	"roadcare/models"
)

// Pusher is the injected real-time port: room-scoped, at-most-once,
// fire-and-forget. Implementations must never block the caller.
type Pusher interface {
	Emit(room, event string, payload any)
}

// MobilePusher delivers a best-effort push to a stored device token.
type MobilePusher interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// Notification event types stored on durable rows and used as live event names.
const (
	EventRequestCreated  = "request.created"
	EventRequestAssigned = "request.assigned"
	EventStatusChanged   = "request.status_changed"
	EventUpdateAppended  = "request.update_appended"
)

// Fanout delivers one state-change event to all interested parties across the
// durable and real-time channels. The durable row is always written before the
// live push is attempted; push failures are never surfaced.
type Fanout interface {
	// RequestBroadcast announces a new unassigned request to the broadcast
	// room so any admin session can react before assignment.
	RequestBroadcast(req *models.ServiceRequest)
	// RequestReceived notifies the pre-selected workshop's admin of a new request.
	RequestReceived(ctx context.Context, req *models.ServiceRequest, adminID string)
	// RequestAssigned notifies both the mechanic and the customer.
	RequestAssigned(ctx context.Context, req *models.ServiceRequest, mech *models.Mechanic)
	// StatusChanged notifies the customer of a lifecycle transition.
	StatusChanged(ctx context.Context, req *models.ServiceRequest, note string)
	// UpdateAppended notifies the customer of a new progress note.
	UpdateAppended(ctx context.Context, req *models.ServiceRequest, upd *models.ServiceUpdate)
}

// Inbox exposes the durable notification rows to their owner.
type Inbox interface {
	List(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string, read bool) error
}
