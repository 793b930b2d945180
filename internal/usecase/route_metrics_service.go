package usecase

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
)

// RouteMetricsService - адаптер внешнего провайдера маршрутов.
// Метрики best-effort: любая ошибка провайдера превращается в nil.
type RouteMetricsService struct {
	directions repository.DirectionsRepository
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewRouteMetricsService создает сервис метрик. cache может быть nil.
func NewRouteMetricsService(
	directions repository.DirectionsRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *RouteMetricsService {
	return &RouteMetricsService{
		directions: directions,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// ComputeMetrics returns the summed driving distance and duration through coords
// in the given order, or nil when fewer than two points are given or the provider fails.
func (s *RouteMetricsService) ComputeMetrics(ctx context.Context, coords domain.Coordinates) *domain.RouteMetrics {
	if len(coords) < 2 {
		return nil
	}

	if s.cache != nil {
		cached, err := s.cache.GetRouteMetrics(ctx, coords)
		if err != nil {
			s.logger.Warn("Route metrics cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached
		}
	}

	resp, err := s.directions.GetDrivingRoute(ctx, coords.First(), coords.Last(), coords.Interior())
	if err != nil {
		s.logger.Warn("Directions request failed, metrics left empty",
			zap.Int("points", len(coords)),
			zap.Error(err))
		return nil
	}
	if resp == nil || len(resp.Routes) == 0 {
		s.logger.Warn("Directions returned no routes, metrics left empty", zap.Int("points", len(coords)))
		return nil
	}

	var distance, duration float64
	for _, leg := range resp.Routes[0].Legs {
		distance += leg.Distance.Value
		duration += leg.Duration.Seconds
	}

	metrics := &domain.RouteMetrics{
		DistanceMeters:  int(math.Round(distance)),
		DurationSeconds: int(math.Round(duration)),
	}

	if s.cache != nil {
		if err := s.cache.SetRouteMetrics(ctx, coords, metrics, s.cacheTTL); err != nil {
			s.logger.Warn("Route metrics cache write failed", zap.Error(err))
		}
	}

	return metrics
}
