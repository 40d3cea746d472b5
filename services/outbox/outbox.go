// Package outbox records failed best-effort side effects as retryable tasks so
// they are recoverable instead of silently dropped.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"roadcare/models"

	"github.com/hibiken/asynq"
)

// Task type names consumed by the replay worker.
const (
	TypeScheduleCreate     = "outbox:schedule_create"
	TypeNotificationCreate = "outbox:notification_create"
	TypeMechanicRelease    = "outbox:mechanic_release"
	TypeEmailSend          = "outbox:email_send"
)

// MechanicReleasePayload asks the worker to retry flipping a mechanic back to
// AVAILABLE after a terminal transition.
type MechanicReleasePayload struct {
	MechanicID string `json:"mechanicId"`
	RequestID  string `json:"requestId"`
}

// EmailSendPayload asks the worker to retry a request-received email.
type EmailSendPayload struct {
	AdminID   string `json:"adminId"`
	RequestID string `json:"requestId"`
}

// Queue enqueues replay tasks for failed side effects.
type Queue interface {
	EnqueueScheduleCreate(ctx context.Context, block models.MechanicSchedule) error
	EnqueueNotificationCreate(ctx context.Context, n models.Notification) error
	EnqueueMechanicRelease(ctx context.Context, p MechanicReleasePayload) error
	EnqueueEmailSend(ctx context.Context, p EmailSendPayload) error
}

// AsynqQueue implements Queue on top of an asynq client.
type AsynqQueue struct {
	Client *asynq.Client
}

func NewAsynqQueue(client *asynq.Client) *AsynqQueue {
	return &AsynqQueue{Client: client}
}

func newTask(taskType string, payload any) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, data), nil
}

func (q *AsynqQueue) enqueue(ctx context.Context, taskType string, payload any) error {
	task, err := newTask(taskType, payload)
	if err != nil {
		return err
	}
	if _, err := q.Client.EnqueueContext(ctx, task, asynq.MaxRetry(10), asynq.Queue("outbox")); err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", taskType, err)
	}
	return nil
}

func (q *AsynqQueue) EnqueueScheduleCreate(ctx context.Context, block models.MechanicSchedule) error {
	return q.enqueue(ctx, TypeScheduleCreate, block)
}

func (q *AsynqQueue) EnqueueNotificationCreate(ctx context.Context, n models.Notification) error {
	return q.enqueue(ctx, TypeNotificationCreate, n)
}

func (q *AsynqQueue) EnqueueMechanicRelease(ctx context.Context, p MechanicReleasePayload) error {
	return q.enqueue(ctx, TypeMechanicRelease, p)
}

func (q *AsynqQueue) EnqueueEmailSend(ctx context.Context, p EmailSendPayload) error {
	return q.enqueue(ctx, TypeEmailSend, p)
}
