package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/marketry/backend/internal/application/campaign"
	appidentity "github.com/marketry/backend/internal/application/identity"
	"github.com/marketry/backend/internal/application/participation"
	"github.com/marketry/backend/internal/application/survey"
	"github.com/marketry/backend/internal/domain/shared"
	"github.com/marketry/backend/internal/infrastructure/auth"
	"github.com/marketry/backend/internal/infrastructure/cache"
	"github.com/marketry/backend/internal/infrastructure/config"
	"github.com/marketry/backend/internal/infrastructure/event"
	"github.com/marketry/backend/internal/infrastructure/logger"
	"github.com/marketry/backend/internal/infrastructure/notification"
	"github.com/marketry/backend/internal/infrastructure/persistence"
	httpiface "github.com/marketry/backend/internal/interfaces/http"
	"github.com/marketry/backend/internal/interfaces/http/handler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Repositories and transaction manager share one gorm handle
	orderRepo := persistence.NewGormProductOrderRepository(db.DB)
	participantRepo := persistence.NewGormParticipantRepository(db.DB)
	submissionRepo := persistence.NewGormSubmissionRepository(db.DB)
	influencerRepo := persistence.NewGormInfluencerRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Event bus carries domain events and notification fan-out
	bus := event.NewInMemoryEventBus(log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := bus.Start(ctx); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}

	// Notification dedupe store: Redis when reachable, in-memory otherwise
	dedupeStore := newDedupeStore(cfg, log)
	if dedupeStore != nil {
		defer func() { _ = dedupeStore.Close() }()
	}
	notifier := notification.NewEventNotifier(bus, dedupeStore, cfg.Notification.DedupeWindow, log)

	// Application services
	lifecycle := participation.NewLifecycleService(orderRepo, participantRepo, submissionRepo, influencerRepo, txManager, log)
	lifecycle.SetNotifier(notifier)
	lifecycle.SetEventPublisher(bus)

	campaignService := campaign.NewService(lifecycle, orderRepo)
	surveyService := survey.NewService(lifecycle, orderRepo)
	identityService := appidentity.NewService(influencerRepo, participantRepo, orderRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	engine := httpiface.NewRouter(httpiface.RouterConfig{
		Config:            cfg,
		Logger:            log,
		JWTService:        jwtService,
		CampaignHandler:   handler.NewCampaignHandler(campaignService, log),
		SurveyHandler:     handler.NewSurveyHandler(surveyService, log),
		InfluencerHandler: handler.NewInfluencerHandler(identityService, log),
		SystemHandler:     handler.NewSystemHandler(db),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("event bus shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}

// newDedupeStore builds the notification dedupe store, or nil when
// deduplication is disabled
func newDedupeStore(cfg *config.Config, log *zap.Logger) shared.IdempotencyStore {
	if !cfg.Notification.DedupeEnabled {
		return nil
	}
	factory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	store, err := factory.CreateStore()
	if err != nil {
		log.Warn("notification dedupe unavailable", zap.Error(err))
		return nil
	}
	return store
}
