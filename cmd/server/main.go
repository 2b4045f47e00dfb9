package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wellnest/tracker-api/internal/api"
	"wellnest/tracker-api/internal/bodymetrics"
	"wellnest/tracker-api/internal/config"
	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/logging"
	"wellnest/tracker-api/internal/repository/mongo"
	"wellnest/tracker-api/internal/service"
	"wellnest/tracker-api/internal/storage"
)

// @title WellNest Tracker API
// @version 1.0
// @description Water, sleep, workout and meal tracking with weekly dashboards.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.JWT.Secret == "" {
		return errors.New("jwt.secret (JWT_SECRET) must be set")
	}
	loc, err := cfg.Tracker.Location()
	if err != nil {
		return fmt.Errorf("tracker timezone: %w", err)
	}
	policy, err := bodymetrics.ParseGenderPolicy(cfg.Tracker.GenderPolicy)
	if err != nil {
		return err
	}

	// --- Database Connection ---
	ctx := context.Background()
	dbClient, appDB, err := mongo.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("disconnecting MongoDB")
		if err := mongo.Disconnect(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	go func() {
		idxCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(idxCtx, appDB, logger)
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(ctx, cfg.S3, logger)
	if err != nil {
		return fmt.Errorf("initialize avatar storage: %w", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	stores := service.LogStores{
		Water:    mongo.NewMongoLogRepository[domain.WaterLog](appDB, mongo.WaterCollectionName),
		Sleep:    mongo.NewMongoLogRepository[domain.SleepLog](appDB, mongo.SleepCollectionName),
		Workouts: mongo.NewMongoLogRepository[domain.WorkoutLog](appDB, mongo.WorkoutCollectionName),
		Meals:    mongo.NewMongoLogRepository[domain.MealLog](appDB, mongo.MealCollectionName),
	}

	// --- Initialize Services ---
	trackerService := service.NewTrackerService(stores, goalRepo, service.TrackerOptions{
		Location:         loc,
		WaterGoalGlasses: cfg.Tracker.WaterGoalGlasses,
	}, logger)
	services := api.Services{
		Auth:     service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Profile:  service.NewProfileService(userRepo, fileStorage, bodymetrics.Calculator{Policy: policy}, logger),
		Tracker:  trackerService,
		Goals:    service.NewGoalService(goalRepo, trackerService, logger),
		Water:    service.NewLogService(stores.Water),
		Sleep:    service.NewLogService(stores.Sleep),
		Workouts: service.NewLogService(stores.Workouts),
		Meals:    service.NewLogService(stores.Meals),
	}

	// --- Initialize Gin Engine ---
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, logger, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("address", cfg.Server.Address), zap.String("timezone", loc.String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exiting")
	return nil
}
