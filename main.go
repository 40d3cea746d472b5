package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roadcare/config"
	"roadcare/cron"
	"roadcare/database"
	assignmentRepo "roadcare/database/repository/assignment"
	mechanicRepo "roadcare/database/repository/mechanic"
	notificationRepo "roadcare/database/repository/notification"
	requestRepo "roadcare/database/repository/request"
	scheduleRepo "roadcare/database/repository/schedule"
	updateRepo "roadcare/database/repository/update"
	workshopRepo "roadcare/database/repository/workshop"
	"roadcare/handlers"
	"roadcare/middleware"
	"roadcare/realtime"
	"roadcare/routes"
	"roadcare/services/assignment"
	"roadcare/services/email"
	"roadcare/services/notification"
	"roadcare/services/outbox"
	"roadcare/services/request"
	"roadcare/services/search"
	"roadcare/services/storage"
	"roadcare/services/updatelog"
	"roadcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	storageService, err := storage.New(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	requests := requestRepo.NewMongoRequestRepo()
	mechanics := mechanicRepo.NewMongoMechanicRepo()
	workshops := workshopRepo.NewMongoWorkshopRepo()
	schedules := scheduleRepo.NewMongoScheduleRepo()
	notifications := notificationRepo.NewMongoNotificationRepo()
	updates := updateRepo.NewMongoUpdateRepo()
	assignments := assignmentRepo.NewMongoAssignmentRepo()

	// outbox queue for failed best-effort side effects.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisOutboxDB,
	})
	defer asynqClient.Close()
	outboxQueue := outbox.NewAsynqQueue(asynqClient)

	// realtime hub plus the notification fanout on top of it.
	hub := realtime.NewHub(logger)
	fanout := &notification.DefaultFanout{
		Repo:   notifications,
		Push:   hub,
		Mobile: &notification.FCMPusher{Client: utils.FCMClient},
		Outbox: outboxQueue,
	}

	emailSender := &email.LogSender{Logger: logger}

	// services.
	lifecycleService := &request.DefaultLifecycleService{
		Requests:  requests,
		Mechanics: mechanics,
		Workshops: workshops,
		Fanout:    fanout,
		Email:     emailSender,
		Outbox:    outboxQueue,
	}

	coordinator := &assignment.DefaultCoordinator{
		Requests:    requests,
		Mechanics:   mechanics,
		Workshops:   workshops,
		Assignments: assignments,
		Schedules:   schedules,
		Fanout:      fanout,
		Outbox:      outboxQueue,
	}

	updateService := &updatelog.DefaultService{
		Updates:   updates,
		Requests:  requests,
		Workshops: workshops,
		Mechanics: mechanics,
		Fanout:    fanout,
	}

	aggregator := &search.Aggregator{
		Searcher: search.NewGooglePlacesClient(config.AppConfig.GoogleAPIKey),
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.SearchCacheTTL) * time.Second,
	}

	// background replay worker for failed side effects.
	cron.InitOutboxWorker(cron.OutboxWorkerDeps{
		Schedules:     schedules,
		Notifications: notifications,
		Mechanics:     mechanics,
		Requests:      requests,
		Email:         emailSender,
	})

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Mechanics:     mechanics,
		Requests:      handlers.NewRequestHandler(lifecycleService),
		Assignments:   handlers.NewAssignmentHandler(coordinator),
		Notifications: handlers.NewNotificationHandler(fanout),
		Updates:       handlers.NewUpdateHandler(updateService),
		Discovery:     handlers.NewDiscoveryHandler(workshops, aggregator),
		Staff:         handlers.NewMechanicHandler(mechanics, workshops, schedules),
		WS:            handlers.NewWebSocketHandler(hub),
		Uploads:       handlers.NewUploadHandler(storageService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
