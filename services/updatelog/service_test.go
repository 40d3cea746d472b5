package updatelog

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	mechanicRepo "roadcare/database/repository/mechanic"
	requestRepo "roadcare/database/repository/request"
	workshopRepo "roadcare/database/repository/workshop"
	"roadcare/models"
	"roadcare/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUpdateRepo struct {
	mu      sync.Mutex
	updates []models.ServiceUpdate
}

func (r *memUpdateRepo) Create(_ context.Context, upd *models.ServiceUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, *upd)
	return nil
}

func (r *memUpdateRepo) ListByRequest(_ context.Context, requestID string) ([]models.ServiceUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ServiceUpdate
	for _, upd := range r.updates {
		if upd.ServiceRequestID == requestID {
			out = append(out, upd)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

type fixedRequestRepo struct {
	requestRepo.RequestRepository
	req *models.ServiceRequest
}

func (r fixedRequestRepo) GetByID(_ context.Context, id string) (*models.ServiceRequest, error) {
	if r.req == nil || r.req.ID != id {
		return nil, requestRepo.ErrNotFound
	}
	cp := *r.req
	return &cp, nil
}

type fixedWorkshopRepo struct {
	workshopRepo.WorkshopRepository
	ws *models.Workshop
}

func (r fixedWorkshopRepo) GetByID(_ context.Context, id string) (*models.Workshop, error) {
	if r.ws == nil || r.ws.ID != id {
		return nil, workshopRepo.ErrNotFound
	}
	cp := *r.ws
	return &cp, nil
}

type fixedMechanicRepo struct {
	mechanicRepo.MechanicRepository
	mech *models.Mechanic
}

func (r fixedMechanicRepo) GetByID(_ context.Context, id string) (*models.Mechanic, error) {
	if r.mech == nil || r.mech.ID != id {
		return nil, mechanicRepo.ErrNotFound
	}
	cp := *r.mech
	return &cp, nil
}

type recordFanout struct {
	mu       sync.Mutex
	appended []string
}

func (f *recordFanout) RequestBroadcast(*models.ServiceRequest) {}
func (f *recordFanout) RequestReceived(context.Context, *models.ServiceRequest, string) {
}
func (f *recordFanout) RequestAssigned(context.Context, *models.ServiceRequest, *models.Mechanic) {
}
func (f *recordFanout) StatusChanged(context.Context, *models.ServiceRequest, string) {}
func (f *recordFanout) UpdateAppended(_ context.Context, _ *models.ServiceRequest, upd *models.ServiceUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, upd.ID)
}

func newUpdateFixture(status models.RequestStatus) (*DefaultService, *memUpdateRepo, *recordFanout) {
	req := &models.ServiceRequest{
		ID:         "req-1",
		CustomerID: "cust-1",
		WorkshopID: "ws-1",
		MechanicID: "mech-1",
		Status:     status,
	}
	updates := &memUpdateRepo{}
	fanout := &recordFanout{}
	svc := &DefaultService{
		Updates:   updates,
		Requests:  fixedRequestRepo{req: req},
		Workshops: fixedWorkshopRepo{ws: &models.Workshop{ID: "ws-1", AdminID: "admin-1"}},
		Mechanics: fixedMechanicRepo{mech: &models.Mechanic{ID: "mech-1", UserID: "mech-user-1"}},
		Fanout:    fanout,
	}
	return svc, updates, fanout
}

var mechanicActor = models.Actor{UserID: "mech-user-1", Role: models.RoleMechanic, MechanicID: "mech-1"}

func TestAppendByAssignedMechanic(t *testing.T) {
	svc, updates, fanout := newUpdateFixture(models.StatusInProgress)

	upd, err := svc.Append(context.Background(), "req-1", mechanicActor, "replacing the tyre", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, upd.ID)
	assert.Equal(t, "req-1", upd.ServiceRequestID)
	assert.Equal(t, "mech-1", upd.MechanicID)
	assert.False(t, upd.Timestamp.IsZero())

	require.Len(t, updates.updates, 1)
	assert.Equal(t, []string{upd.ID}, fanout.appended)
}

func TestAppendRejectsNonMechanic(t *testing.T) {
	svc, _, _ := newUpdateFixture(models.StatusInProgress)

	customer := models.Actor{UserID: "cust-1", Role: models.RoleCustomer}
	_, err := svc.Append(context.Background(), "req-1", customer, "note", nil)
	assert.Equal(t, "NOT_ASSIGNED_MECHANIC", utils.CodeOf(err))

	otherMech := models.Actor{Role: models.RoleMechanic, MechanicID: "mech-2"}
	_, err = svc.Append(context.Background(), "req-1", otherMech, "note", nil)
	assert.Equal(t, "NOT_ASSIGNED_MECHANIC", utils.CodeOf(err))
}

func TestAppendRejectsClosedRequest(t *testing.T) {
	for _, status := range []models.RequestStatus{models.StatusCompleted, models.StatusCancelled} {
		svc, _, _ := newUpdateFixture(status)
		_, err := svc.Append(context.Background(), "req-1", mechanicActor, "too late", nil)
		assert.Equal(t, "REQUEST_CLOSED", utils.CodeOf(err), "status %s", status)
	}
}

func TestAppendRequiresMessage(t *testing.T) {
	svc, _, _ := newUpdateFixture(models.StatusInProgress)

	_, err := svc.Append(context.Background(), "req-1", mechanicActor, "", nil)
	assert.Equal(t, "MISSING_FIELD", utils.CodeOf(err))
}

func TestAppendUnknownRequest(t *testing.T) {
	svc, _, _ := newUpdateFixture(models.StatusInProgress)

	_, err := svc.Append(context.Background(), "ghost", mechanicActor, "note", nil)
	assert.Equal(t, "REQUEST_NOT_FOUND", utils.CodeOf(err))
}

func TestListNewestFirst(t *testing.T) {
	svc, updates, _ := newUpdateFixture(models.StatusInProgress)
	ctx := context.Background()

	base := time.Now()
	for i, msg := range []string{"first", "second", "third"} {
		require.NoError(t, updates.Create(ctx, &models.ServiceUpdate{
			ID:               msg,
			ServiceRequestID: "req-1",
			Message:          msg,
			Timestamp:        base.Add(time.Duration(i) * time.Minute),
		}))
	}

	out, err := svc.List(ctx, "req-1", mechanicActor)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "third", out[0].Message)
	assert.Equal(t, "first", out[2].Message)
}

func TestListPolicyGated(t *testing.T) {
	svc, _, _ := newUpdateFixture(models.StatusInProgress)
	ctx := context.Background()

	customer := models.Actor{UserID: "cust-1", Role: models.RoleCustomer}
	_, err := svc.List(ctx, "req-1", customer)
	assert.NoError(t, err)

	admin := models.Actor{UserID: "admin-1", Role: models.RoleAdmin}
	_, err = svc.List(ctx, "req-1", admin)
	assert.NoError(t, err)

	stranger := models.Actor{UserID: "someone", Role: models.RoleCustomer}
	_, err = svc.List(ctx, "req-1", stranger)
	assert.Equal(t, "REQUEST_ACCESS_DENIED", utils.CodeOf(err))
}
