package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nishantpawar/institute-backend/api/controllers"
	"github.com/nishantpawar/institute-backend/api/routes"
	"github.com/nishantpawar/institute-backend/internal/auth"
	"github.com/nishantpawar/institute-backend/internal/courses"
	"github.com/nishantpawar/institute-backend/internal/feedback"
	"github.com/nishantpawar/institute-backend/internal/media"
	"github.com/nishantpawar/institute-backend/internal/notify"
	"github.com/nishantpawar/institute-backend/internal/recorded"
	"github.com/nishantpawar/institute-backend/internal/sitesettings"
	"github.com/nishantpawar/institute-backend/internal/users"
	"github.com/nishantpawar/institute-backend/pkg/config"
	"github.com/nishantpawar/institute-backend/pkg/db"
	"github.com/nishantpawar/institute-backend/pkg/logger"
	"github.com/nishantpawar/institute-backend/pkg/mailer"
	"github.com/nishantpawar/institute-backend/pkg/metrics"
	"github.com/nishantpawar/institute-backend/pkg/migrate"
	"github.com/nishantpawar/institute-backend/pkg/redis"
	"github.com/nishantpawar/institute-backend/pkg/storage/gcs"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cloud storage", err)
		os.Exit(1)
	}

	mailClient, err := mailer.NewClient(cfg.Mailer, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap mailer", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	broadcastMetrics := metrics.NewBroadcastMetrics(registry)

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	coursesRepo := courses.NewRepository(gormDB)
	recordedRepo := recorded.NewRepository(gormDB)
	feedbackRepo := feedback.NewRepository(gormDB)
	notifyRepo := notify.NewRepository(gormDB)
	settingsRepo := sitesettings.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		OTPStore:       redisClient,
		Mailer:         mailClient,
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		OTPConfig:      cfg.OTP,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	mediaService, err := media.NewService(gcsClient, cfg.GCS, cfg.Media)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	courseService, err := courses.NewService(coursesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create course service", err)
		os.Exit(1)
	}

	recordedService, err := recorded.NewService(recorded.ServiceParams{
		Repo:    recordedRepo,
		Remover: mediaService,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create recorded course service", err)
		os.Exit(1)
	}

	aggregator, err := feedback.NewAggregator(feedback.AggregatorParams{
		Source:          feedbackRepo,
		Courses:         coursesRepo,
		RecordedCourses: recordedRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create rating aggregator", err)
		os.Exit(1)
	}

	feedbackService, err := feedback.NewService(feedback.ServiceParams{
		Repo:       feedbackRepo,
		Aggregator: aggregator,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create feedback service", err)
		os.Exit(1)
	}

	dispatcher, err := notify.NewDispatcher(mailClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create broadcast dispatcher", err)
		os.Exit(1)
	}

	broadcastQueue, err := notify.NewBroadcastQueue(notify.QueueParams{
		Store:          notifyRepo,
		Dispatcher:     dispatcher,
		Logger:         logg,
		Metrics:        broadcastMetrics,
		PerSendTimeout: cfg.Broadcast.PerSendTimeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create broadcast queue", err)
		os.Exit(1)
	}

	notifyService, err := notify.NewService(notify.ServiceParams{
		Repo:       notifyRepo,
		Recipients: usersRepo,
		Queue:      broadcastQueue,
		Remover:    mediaService,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	settingsService, err := sitesettings.NewService(sitesettings.ServiceParams{
		Repo:    settingsRepo,
		Remover: mediaService,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create site settings service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Logger:   logg,
		Registry: registry,
		Probes: map[string]controllers.Pinger{
			"db":    dbClient,
			"redis": redisClient,
			"gcs":   gcsClient,
		},
		RateLimitStore:      redisClient,
		AuthService:         authService,
		CourseService:       courseService,
		RecordedService:     recordedService,
		FeedbackService:     feedbackService,
		NotifyService:       notifyService,
		MediaService:        mediaService,
		SiteSettingsService: settingsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errs := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}

	// Drain queued broadcasts before the process exits.
	broadcastQueue.Close()
}
