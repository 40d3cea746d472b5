package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	notificationRepo "roadcare/database/repository/notification"
	"roadcare/models"
	"roadcare/realtime"
	"roadcare/services/outbox"
	"roadcare/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memNotificationRepo struct {
	mu        sync.Mutex
	rows      []models.Notification
	createErr error
}

func (r *memNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, row := range r.rows {
		if row.ID == n.ID {
			return nil // duplicate ids are a no-op
		}
	}
	r.rows = append(r.rows, *n)
	return nil
}

func (r *memNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, row := range r.rows {
		if row.UserID == userID && !row.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepo) SetRead(_ context.Context, id, userID string, read bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.ID == id && row.UserID == userID {
			r.rows[i].IsRead = read
			return nil
		}
	}
	return notificationRepo.ErrNotFound
}

// recordPusher captures emitted events and whether the durable row existed at
// emit time.
type recordPusher struct {
	mu     sync.Mutex
	repo   *memNotificationRepo
	events []emittedEvent
}

type emittedEvent struct {
	Room          string
	Event         string
	StoredAtEmit  int
	PayloadUserID string
}

func (p *recordPusher) Emit(room, event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.repo.mu.Lock()
	stored := len(p.repo.rows)
	p.repo.mu.Unlock()

	userID := ""
	if n, ok := payload.(models.Notification); ok {
		userID = n.UserID
	}
	p.events = append(p.events, emittedEvent{Room: room, Event: event, StoredAtEmit: stored, PayloadUserID: userID})
}

type recordQueue struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (q *recordQueue) EnqueueScheduleCreate(context.Context, models.MechanicSchedule) error {
	return nil
}
func (q *recordQueue) EnqueueNotificationCreate(_ context.Context, n models.Notification) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notifications = append(q.notifications, n)
	return nil
}
func (q *recordQueue) EnqueueMechanicRelease(context.Context, outbox.MechanicReleasePayload) error {
	return nil
}
func (q *recordQueue) EnqueueEmailSend(context.Context, outbox.EmailSendPayload) error { return nil }

func newFanoutFixture() (*DefaultFanout, *memNotificationRepo, *recordPusher, *recordQueue) {
	repo := &memNotificationRepo{}
	pusher := &recordPusher{repo: repo}
	queue := &recordQueue{}
	f := &DefaultFanout{Repo: repo, Push: pusher, Outbox: queue}
	return f, repo, pusher, queue
}

func sampleRequest() *models.ServiceRequest {
	return &models.ServiceRequest{
		ID:            "req-1",
		CustomerID:    "cust-1",
		IssueType:     "flat tyre",
		PickupAddress: "Sector 17",
		Status:        models.StatusAssigned,
		MechanicID:    "mech-1",
		CreatedAt:     time.Now(),
	}
}

func TestDurableRowWrittenBeforePush(t *testing.T) {
	f, repo, pusher, _ := newFanoutFixture()

	f.RequestReceived(context.Background(), sampleRequest(), "admin-1")

	require.Len(t, repo.rows, 1)
	row := repo.rows[0]
	assert.Equal(t, "admin-1", row.UserID)
	assert.Equal(t, EventRequestCreated, row.Type)
	assert.Equal(t, "req-1", row.RelatedID)
	assert.NotEmpty(t, row.ID)
	assert.False(t, row.IsRead)

	require.Len(t, pusher.events, 1)
	assert.Equal(t, realtime.UserRoom("admin-1"), pusher.events[0].Room)
	// The durable row already existed when the live push went out.
	assert.Equal(t, 1, pusher.events[0].StoredAtEmit)
}

func TestRequestBroadcastGoesToBroadcastRoom(t *testing.T) {
	f, repo, pusher, _ := newFanoutFixture()

	f.RequestBroadcast(sampleRequest())

	// Broadcasts are live-only: no durable row for any single recipient.
	assert.Empty(t, repo.rows)
	require.Len(t, pusher.events, 1)
	assert.Equal(t, realtime.BroadcastRoom, pusher.events[0].Room)
	assert.Equal(t, EventRequestCreated, pusher.events[0].Event)
}

func TestRequestAssignedNotifiesBothParties(t *testing.T) {
	f, repo, pusher, _ := newFanoutFixture()
	mech := &models.Mechanic{ID: "mech-1", UserID: "mech-user-1", Name: "Ravi"}

	f.RequestAssigned(context.Background(), sampleRequest(), mech)

	require.Len(t, repo.rows, 2)
	recipients := map[string]bool{}
	for _, row := range repo.rows {
		recipients[row.UserID] = true
		assert.Equal(t, EventRequestAssigned, row.Type)
	}
	assert.True(t, recipients["mech-user-1"])
	assert.True(t, recipients["cust-1"])

	rooms := map[string]bool{}
	for _, ev := range pusher.events {
		rooms[ev.Room] = true
	}
	assert.True(t, rooms[realtime.MechanicRoom("mech-1")])
	assert.True(t, rooms[realtime.UserRoom("cust-1")])
}

func TestStatusChangedEmitsToMechanicRoom(t *testing.T) {
	f, _, pusher, _ := newFanoutFixture()

	f.StatusChanged(context.Background(), sampleRequest(), "on my way")

	rooms := map[string]bool{}
	for _, ev := range pusher.events {
		rooms[ev.Room] = true
	}
	assert.True(t, rooms[realtime.UserRoom("cust-1")])
	assert.True(t, rooms[realtime.MechanicRoom("mech-1")])
}

func TestFailedDurableWriteStillPushesAndQueuesReplay(t *testing.T) {
	f, repo, pusher, queue := newFanoutFixture()
	repo.createErr = errors.New("db down")

	f.RequestReceived(context.Background(), sampleRequest(), "admin-1")

	// The live push still happened; the durable row is queued for replay.
	require.Len(t, pusher.events, 1)
	require.Len(t, queue.notifications, 1)
	assert.Equal(t, "admin-1", queue.notifications[0].UserID)
	assert.NotEmpty(t, queue.notifications[0].ID)
}

func TestInbox(t *testing.T) {
	f, _, _, _ := newFanoutFixture()
	ctx := context.Background()

	f.RequestReceived(ctx, sampleRequest(), "admin-1")
	f.UpdateAppended(ctx, sampleRequest(), &models.ServiceUpdate{ID: "upd-1", Message: "done"})

	rows, err := f.List(ctx, "admin-1", 50)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	count, err := f.UnreadCount(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, f.MarkRead(ctx, rows[0].ID, "admin-1", true))
	count, err = f.UnreadCount(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Unread again.
	require.NoError(t, f.MarkRead(ctx, rows[0].ID, "admin-1", false))
	count, _ = f.UnreadCount(ctx, "admin-1")
	assert.Equal(t, int64(1), count)
}

func TestMarkReadWrongOwner(t *testing.T) {
	f, _, _, _ := newFanoutFixture()
	ctx := context.Background()

	f.RequestReceived(ctx, sampleRequest(), "admin-1")
	rows, err := f.List(ctx, "admin-1", 50)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	err = f.MarkRead(ctx, rows[0].ID, "someone-else", true)
	require.Error(t, err)
	assert.Equal(t, "NOTIFICATION_NOT_FOUND", utils.CodeOf(err))
}

func TestListLimit(t *testing.T) {
	f, _, _, _ := newFanoutFixture()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.RequestReceived(ctx, sampleRequest(), "admin-1")
	}

	rows, err := f.List(ctx, "admin-1", 3)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
