package outbox

import (
	"encoding/json"
	"testing"
	"time"

	"roadcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleCreateTaskRoundTrip(t *testing.T) {
	block := models.MechanicSchedule{
		ID:         "sched-1",
		MechanicID: "mech-1",
		Title:      "Service call",
		StartTime:  time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Type:       "service",
		ServiceID:  "req-1",
	}

	task, err := newTask(TypeScheduleCreate, block)
	require.NoError(t, err)
	assert.Equal(t, TypeScheduleCreate, task.Type())

	// Decode the way the replay worker does.
	var got models.MechanicSchedule
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, block, got)
}

func TestNotificationCreateTaskRoundTrip(t *testing.T) {
	n := models.Notification{
		ID:        "notif-1",
		UserID:    "user-1",
		Title:     "Mechanic assigned",
		Message:   "A mechanic is on the way",
		Type:      "request.assigned",
		RelatedID: "req-1",
		CreatedAt: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
	}

	task, err := newTask(TypeNotificationCreate, n)
	require.NoError(t, err)
	assert.Equal(t, TypeNotificationCreate, task.Type())

	var got models.Notification
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, n, got)
}

func TestMechanicReleaseTaskRoundTrip(t *testing.T) {
	task, err := newTask(TypeMechanicRelease, MechanicReleasePayload{
		MechanicID: "mech-1",
		RequestID:  "req-1",
	})
	require.NoError(t, err)
	assert.Equal(t, TypeMechanicRelease, task.Type())

	var got MechanicReleasePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, "mech-1", got.MechanicID)
	assert.Equal(t, "req-1", got.RequestID)
}

func TestEmailSendTaskRoundTrip(t *testing.T) {
	task, err := newTask(TypeEmailSend, EmailSendPayload{
		AdminID:   "admin-1",
		RequestID: "req-1",
	})
	require.NoError(t, err)
	assert.Equal(t, TypeEmailSend, task.Type())

	var got EmailSendPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, "admin-1", got.AdminID)
	assert.Equal(t, "req-1", got.RequestID)
}
