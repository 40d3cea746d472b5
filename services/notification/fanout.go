package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "roadcare/database/repository/notification"
	"roadcare/models"
	"roadcare/realtime"
	"roadcare/services/outbox"
	"roadcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultFanout is the production Fanout and Inbox implementation.
type DefaultFanout struct {
	Repo   notificationRepo.NotificationRepository
	Push   Pusher
	Mobile MobilePusher
	Outbox outbox.Queue
}

// deliver writes the durable row, then attempts the live push. A failed
// durable write is logged and queued for replay; it never aborts the caller.
func (f *DefaultFanout) deliver(ctx context.Context, n models.Notification, room string) {
	logger := utils.GetLogger()

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if err := f.Repo.Create(ctx, &n); err != nil {
		logger.Error("fanout: failed to store notification",
			zap.String("userId", n.UserID), zap.String("type", n.Type), zap.Error(err))
		if f.Outbox != nil {
			if qErr := f.Outbox.EnqueueNotificationCreate(ctx, n); qErr != nil {
				logger.Error("fanout: failed to enqueue notification replay", zap.Error(qErr))
			}
		}
	}

	// Live push only after the durable write was attempted.
	f.Push.Emit(room, n.Type, n)
}

func (f *DefaultFanout) pushMobile(token, title, body string, data map[string]string) {
	if f.Mobile == nil || token == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := f.Mobile.Send(ctx, token, title, body, data); err != nil {
			utils.GetLogger().Warn("fanout: mobile push failed", zap.Error(err))
		}
	}()
}

func (f *DefaultFanout) RequestBroadcast(req *models.ServiceRequest) {
	f.Push.Emit(realtime.BroadcastRoom, EventRequestCreated, req)
}

func (f *DefaultFanout) RequestReceived(ctx context.Context, req *models.ServiceRequest, adminID string) {
	f.deliver(ctx, models.Notification{
		UserID:    adminID,
		Title:     "New service request",
		Message:   fmt.Sprintf("A customer requested %s at %s.", req.IssueType, req.PickupAddress),
		Type:      EventRequestCreated,
		RelatedID: req.ID,
	}, realtime.UserRoom(adminID))
}

func (f *DefaultFanout) RequestAssigned(ctx context.Context, req *models.ServiceRequest, mech *models.Mechanic) {
	f.deliver(ctx, models.Notification{
		UserID:    mech.UserID,
		Title:     "New job assigned",
		Message:   fmt.Sprintf("You have been assigned to a %s request at %s.", req.IssueType, req.PickupAddress),
		Type:      EventRequestAssigned,
		RelatedID: req.ID,
	}, realtime.MechanicRoom(mech.ID))

	f.deliver(ctx, models.Notification{
		UserID:    req.CustomerID,
		Title:     "Mechanic assigned",
		Message:   fmt.Sprintf("%s is on the job for your %s request.", mech.Name, req.IssueType),
		Type:      EventRequestAssigned,
		RelatedID: req.ID,
	}, realtime.UserRoom(req.CustomerID))

	f.pushMobile(mech.FCMToken, "New job assigned", fmt.Sprintf("%s at %s", req.IssueType, req.PickupAddress), map[string]string{
		"type":      EventRequestAssigned,
		"requestId": req.ID,
	})
}

func (f *DefaultFanout) StatusChanged(ctx context.Context, req *models.ServiceRequest, note string) {
	msg := fmt.Sprintf("Your %s request is now %s.", req.IssueType, req.Status)
	if note != "" {
		msg = fmt.Sprintf("%s %s", msg, note)
	}
	f.deliver(ctx, models.Notification{
		UserID:    req.CustomerID,
		Title:     "Request status updated",
		Message:   msg,
		Type:      EventStatusChanged,
		RelatedID: req.ID,
	}, realtime.UserRoom(req.CustomerID))

	if req.MechanicID != "" {
		f.Push.Emit(realtime.MechanicRoom(req.MechanicID), EventStatusChanged, req)
	}
}

func (f *DefaultFanout) UpdateAppended(ctx context.Context, req *models.ServiceRequest, upd *models.ServiceUpdate) {
	f.deliver(ctx, models.Notification{
		UserID:    req.CustomerID,
		Title:     "Progress update",
		Message:   upd.Message,
		Type:      EventUpdateAppended,
		RelatedID: req.ID,
	}, realtime.UserRoom(req.CustomerID))
}

// --- Inbox ---

func (f *DefaultFanout) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return f.Repo.ListByUser(ctx, userID, limit)
}

func (f *DefaultFanout) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return f.Repo.CountUnread(ctx, userID)
}

func (f *DefaultFanout) MarkRead(ctx context.Context, id, userID string, read bool) error {
	if err := f.Repo.SetRead(ctx, id, userID, read); err != nil {
		if err == notificationRepo.ErrNotFound {
			return utils.NewNotFoundError("NOTIFICATION_NOT_FOUND", "notification not found")
		}
		return err
	}
	return nil
}
