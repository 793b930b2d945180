package main

// @title Route Service API
// @version 1.0.0
// @description Журнал маршрутов: системные и пользовательские маршруты с учетом видимости,
// @description поездки с оценками и фотографиями, сохранения маршрутов и лайки поездок.
// @description Расстояние и время в пути считаются внешним провайдером маршрутов.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey session
// @in header
// @name Authorization

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/route-service/docs"
	"github.com/route-service/internal/config"
	httpDelivery "github.com/route-service/internal/delivery/http"
	"github.com/route-service/internal/delivery/http/handler"
	"github.com/route-service/internal/infrastructure/directions"
	"github.com/route-service/internal/infrastructure/session"
	"github.com/route-service/internal/pkg/logger"
	"github.com/route-service/internal/repository/blob"
	"github.com/route-service/internal/repository/cache"
	"github.com/route-service/internal/repository/postgres"
	redisRepo "github.com/route-service/internal/repository/redis"
	"github.com/route-service/internal/usecase"
)

// dependencies проверяет Postgres и Redis для /health
type dependencies struct {
	db    *postgres.DB
	redis *cache.Redis
}

func (d dependencies) Health(ctx context.Context) error {
	return errors.Join(d.db.Health(ctx), d.redis.Health(ctx))
}

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "route-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Route Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Migrations
	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(cfg.GetDatabaseURL(), log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// 4. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 5. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 6. Open photo storage
	store, err := blob.Open(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to open photo storage", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close photo storage", zap.Error(err))
		}
	}()

	// 7. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	deps := dependencies{db: db, redis: redisClient}
	if err := deps.Health(ctx); err != nil {
		log.Fatal("Dependency health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 8. Initialize Repositories
	routeRepo := postgres.NewRouteRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	relationRepo := postgres.NewRelationRepository(db)
	userRepo := postgres.NewUserRepository(db)
	regionRepo := postgres.NewRegionRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout, cfg.Worker.PendingReclaimAfter)

	directionsClient := directions.WithCircuitBreaker(
		directions.NewClient(&cfg.Directions, log),
		&cfg.Directions,
		log,
	)
	sessions := session.NewManager(&cfg.Auth)

	log.Info("Repositories initialized")

	// 9. Initialize Use Cases
	metricsSvc := usecase.NewRouteMetricsService(directionsClient, cacheRepo, cfg.Cache.MetricsCacheTTL, log)
	aggregator := usecase.NewRouteAggregator(photoRepo, tripRepo, relationRepo, log)
	toggler := usecase.NewRelationToggler(relationRepo, log)
	photoUC := usecase.NewPhotoUseCase(store.ObjectStorage(), photoRepo, routeRepo, tripRepo, &cfg.Storage, log)

	routeUC := usecase.NewRouteUseCase(routeRepo, aggregator, toggler, metricsSvc, streamRepo, log)
	tripUC := usecase.NewTripUseCase(tripRepo, routeRepo, photoRepo, relationRepo, photoUC, toggler, log)
	userUC := usecase.NewUserUseCase(userRepo, photoUC, sessions, log)
	regionUC := usecase.NewRegionUseCase(regionRepo, cacheRepo, cfg.Cache.RegionsCacheTTL, log)

	log.Info("Use cases initialized")

	// 10. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		httpDelivery.Handlers{
			Route:  handler.NewRouteHandler(routeUC, log),
			Trip:   handler.NewTripHandler(tripUC, log),
			Photo:  handler.NewPhotoHandler(photoUC, log),
			User:   handler.NewUserHandler(userUC, cfg, log),
			Region: handler.NewRegionHandler(regionUC, log),
		},
		sessions,
		deps,
	)

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
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
