package repository

import (
	"context"
	"time"

	"github.com/route-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetRouteMetrics returns memoised directions metrics; (nil, nil) on miss.
	GetRouteMetrics(ctx context.Context, coords domain.Coordinates) (*domain.RouteMetrics, error)

	// SetRouteMetrics memoises a successful directions result.
	SetRouteMetrics(ctx context.Context, coords domain.Coordinates, metrics *domain.RouteMetrics, ttl time.Duration) error

	// GetRegions получает список регионов из кеша; (nil, nil) при промахе
	GetRegions(ctx context.Context) ([]domain.Region, error)

	// SetRegions сохраняет список регионов
	SetRegions(ctx context.Context, regions []domain.Region, ttl time.Duration) error

	// GetSubregions получает подрегионы региона из кеша; (nil, nil) при промахе
	GetSubregions(ctx context.Context, regionKey string) ([]domain.Subregion, error)

	// SetSubregions сохраняет подрегионы региона
	SetSubregions(ctx context.Context, regionKey string, subregions []domain.Subregion, ttl time.Duration) error
}
