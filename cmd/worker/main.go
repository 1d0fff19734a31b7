package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/grievance-service/internal/config"
	"github.com/grievance-service/internal/infrastructure/naver"
	"github.com/grievance-service/internal/pkg/logger"
	"github.com/grievance-service/internal/repository/cache"
	"github.com/grievance-service/internal/repository/postgres"
	redisRepo "github.com/grievance-service/internal/repository/redis"
	"github.com/grievance-service/internal/usecase"
	"github.com/grievance-service/internal/worker"
	"github.com/grievance-service/internal/worker/backfill"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "grievance-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Area Backfill Worker",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Int("batch", cfg.Worker.BackfillBatch),
		zap.Duration("sweep_interval", cfg.Worker.SweepInterval))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	areaRepo := postgres.NewAreaRepository(db)
	grievanceRepo := postgres.NewGrievanceRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	geocoder := naver.NewReverseGeocodeClient(&cfg.Geocoder, log)

	// 6. Initialize use cases
	initCtx, initCancel := context.WithTimeout(context.Background(), 5*time.Second)
	matcher, err := usecase.NewAreaMatcher(initCtx, areaRepo, cfg.Area.UnassignedName, log)
	initCancel()
	if err != nil {
		log.Fatal("Area matcher initialization failed", zap.Error(err))
	}
	resolver := usecase.NewLocationResolver(cacheRepo, geocoder, cfg.Cache.GeocodeCacheTTL, cfg.Geocoder.Timeout, log)
	backfillUC := usecase.NewBackfillUseCase(grievanceRepo, streamRepo, cacheRepo, resolver, matcher, cfg.Worker.QueuedTTL, log)

	// 7. Register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(backfill.NewAreaBackfillWorker(streamRepo, backfillUC, cfg.Worker, log))

	// 8. Start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 9. Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info("Received shutdown signal")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	if err := workerManager.Stop(stopCtx); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
