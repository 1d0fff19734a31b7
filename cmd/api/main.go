package main

// @title Grievance Service API
// @version 1.0.0
// @description Жалобы граждан с геометкой: обратное геокодирование, назначение района, поиск рядом и правила видимости приватных жалоб.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/grievance-service/docs"
	"github.com/grievance-service/internal/config"
	httpDelivery "github.com/grievance-service/internal/delivery/http"
	"github.com/grievance-service/internal/delivery/http/handler"
	"github.com/grievance-service/internal/infrastructure/naver"
	"github.com/grievance-service/internal/pkg/logger"
	"github.com/grievance-service/internal/repository/cache"
	"github.com/grievance-service/internal/repository/postgres"
	"github.com/grievance-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "grievance-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Grievance Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("unassigned_area", cfg.Area.UnassignedName),
		zap.Duration("geocode_cache_ttl", cfg.Cache.GeocodeCacheTTL),
	)

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

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	// 6. Initialize repositories
	areaRepo := postgres.NewAreaRepository(db)
	grievanceRepo := postgres.NewGrievanceRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	geocoder := naver.NewReverseGeocodeClient(&cfg.Geocoder, log)

	// 7. Initialize use cases. Без зарезервированного района сервис не стартует.
	matcher, err := usecase.NewAreaMatcher(ctx, areaRepo, cfg.Area.UnassignedName, log)
	if err != nil {
		log.Fatal("Area matcher initialization failed", zap.Error(err))
	}
	resolver := usecase.NewLocationResolver(cacheRepo, geocoder, cfg.Cache.GeocodeCacheTTL, cfg.Geocoder.Timeout, log)
	proximity := usecase.NewProximityIndex(grievanceRepo, log)

	grievanceUC := usecase.NewGrievanceUseCase(grievanceRepo, resolver, matcher, proximity, cfg.Grievance, log)
	areaUC := usecase.NewAreaUseCase(areaRepo, matcher, resolver, log)

	log.Info("All connections healthy",
		zap.Int64("unassigned_area_id", matcher.Unassigned().ID))

	// 8. Initialize HTTP handlers
	grievanceHandler := handler.NewGrievanceHandler(grievanceUC, log)
	areaHandler := handler.NewAreaHandler(areaUC, log)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthCheck{
		"postgres":        db.Health,
		"redis":           cacheRepo.Health,
		"unassigned_area": areaUC.CheckUnassigned,
	}, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, grievanceHandler, areaHandler, healthHandler)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
