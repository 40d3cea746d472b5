// Package cron runs the background replay worker for failed side effects.
package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"roadcare/config"
	mechanicRepo "roadcare/database/repository/mechanic"
	notificationRepo "roadcare/database/repository/notification"
	requestRepo "roadcare/database/repository/request"
	scheduleRepo "roadcare/database/repository/schedule"
	"roadcare/models"
	"roadcare/services/email"
	"roadcare/services/outbox"
	"roadcare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// OutboxWorkerDeps bundles everything the replay handlers need.
type OutboxWorkerDeps struct {
	Schedules     scheduleRepo.ScheduleRepository
	Notifications notificationRepo.NotificationRepository
	Mechanics     mechanicRepo.MechanicRepository
	Requests      requestRepo.RequestRepository
	Email         email.Sender
}

// InitOutboxWorker runs the async replay worker in the background. Replays are
// idempotent: repository inserts ignore duplicate ids and availability flips
// are conditional writes.
func InitOutboxWorker(deps OutboxWorkerDeps) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisOutboxDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"outbox": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(outbox.TypeScheduleCreate, handleScheduleCreate(deps.Schedules))
	mux.HandleFunc(outbox.TypeNotificationCreate, handleNotificationCreate(deps.Notifications))
	mux.HandleFunc(outbox.TypeMechanicRelease, handleMechanicRelease(deps.Mechanics))
	mux.HandleFunc(outbox.TypeEmailSend, handleEmailSend(deps.Requests, deps.Email))

	go monitorRedisConnection(logger)

	go func() {
		logger.Info("starting outbox replay worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("outbox worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("outbox worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleScheduleCreate(schedules scheduleRepo.ScheduleRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var block models.MechanicSchedule
		if err := json.Unmarshal(task.Payload(), &block); err != nil {
			utils.GetLogger().Error("invalid schedule replay payload", zap.Error(err))
			return err
		}
		return schedules.Create(ctx, &block)
	}
}

func handleNotificationCreate(notifications notificationRepo.NotificationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var n models.Notification
		if err := json.Unmarshal(task.Payload(), &n); err != nil {
			utils.GetLogger().Error("invalid notification replay payload", zap.Error(err))
			return err
		}
		return notifications.Create(ctx, &n)
	}
}

func handleMechanicRelease(mechanics mechanicRepo.MechanicRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p outbox.MechanicReleasePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid mechanic release payload", zap.Error(err))
			return err
		}

		err := mechanics.SetAvailabilityIf(ctx, p.MechanicID, models.InService, models.Available)
		if errors.Is(err, mechanicRepo.ErrAvailabilityChanged) {
			// Already released, or re-engaged on a newer request.
			return nil
		}
		return err
	}
}

func handleEmailSend(requests requestRepo.RequestRepository, sender email.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p outbox.EmailSendPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid email replay payload", zap.Error(err))
			return err
		}

		req, err := requests.GetByID(ctx, p.RequestID)
		if errors.Is(err, requestRepo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return sender.SendRequestReceived(ctx, p.AdminID, req)
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisOutboxDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("outbox redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
