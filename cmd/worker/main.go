package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/route-service/internal/config"
	"github.com/route-service/internal/infrastructure/directions"
	"github.com/route-service/internal/pkg/logger"
	"github.com/route-service/internal/repository/cache"
	"github.com/route-service/internal/repository/postgres"
	redisRepo "github.com/route-service/internal/repository/redis"
	"github.com/route-service/internal/usecase"
	"github.com/route-service/internal/worker"
	"github.com/route-service/internal/worker/routemetrics"
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
	log, err := logger.New(cfg.Log.Level, "route-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Route Metrics Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Duration("stream_read_timeout", cfg.Worker.StreamReadTimeout))

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
	routeRepo := postgres.NewRouteRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	relationRepo := postgres.NewRelationRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout, cfg.Worker.PendingReclaimAfter)

	directionsClient := directions.WithCircuitBreaker(
		directions.NewClient(&cfg.Directions, log),
		&cfg.Directions,
		log,
	)

	// 6. Initialize use cases
	metricsSvc := usecase.NewRouteMetricsService(directionsClient, cacheRepo, cfg.Cache.MetricsCacheTTL, log)
	routeUC := usecase.NewRouteUseCase(
		routeRepo,
		usecase.NewRouteAggregator(photoRepo, tripRepo, relationRepo, log),
		usecase.NewRelationToggler(relationRepo, log),
		metricsSvc,
		streamRepo,
		log,
	)

	// 7. Initialize workers
	metricsWorker := routemetrics.NewRouteMetricsWorker(
		streamRepo,
		routeUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(metricsWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	if err := workerManager.Stop(stopCtx); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
