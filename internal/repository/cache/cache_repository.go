package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
)

const (
	regionsKey         = "regions:all"
	subregionsKeyFmt   = "regions:%s:subregions"
	routeMetricsPrefix = "directions:metrics:"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// getJSON декодирует значение по ключу; found=false при промахе
func (r *cacheRepository) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		r.logger.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = r.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return r.Set(ctx, key, data, ttl)
}

// RouteMetricsKey - ключ мемоизации метрик; зависит только от упорядоченного списка координат
func RouteMetricsKey(coords domain.Coordinates) string {
	h := sha1.New()
	for _, c := range coords {
		h.Write([]byte(strconv.FormatFloat(c.Lat, 'f', -1, 64)))
		h.Write([]byte{','})
		h.Write([]byte(strconv.FormatFloat(c.Lng, 'f', -1, 64)))
		h.Write([]byte{';'})
	}
	return routeMetricsPrefix + hex.EncodeToString(h.Sum(nil))
}

func (r *cacheRepository) GetRouteMetrics(ctx context.Context, coords domain.Coordinates) (*domain.RouteMetrics, error) {
	var metrics domain.RouteMetrics
	found, err := r.getJSON(ctx, RouteMetricsKey(coords), &metrics)
	if err != nil || !found {
		return nil, err
	}
	return &metrics, nil
}

func (r *cacheRepository) SetRouteMetrics(ctx context.Context, coords domain.Coordinates, metrics *domain.RouteMetrics, ttl time.Duration) error {
	if metrics == nil {
		return nil
	}
	return r.setJSON(ctx, RouteMetricsKey(coords), metrics, ttl)
}

func (r *cacheRepository) GetRegions(ctx context.Context) ([]domain.Region, error) {
	var regions []domain.Region
	found, err := r.getJSON(ctx, regionsKey, &regions)
	if err != nil || !found {
		return nil, err
	}
	return regions, nil
}

func (r *cacheRepository) SetRegions(ctx context.Context, regions []domain.Region, ttl time.Duration) error {
	return r.setJSON(ctx, regionsKey, regions, ttl)
}

func (r *cacheRepository) GetSubregions(ctx context.Context, regionKey string) ([]domain.Subregion, error) {
	var subregions []domain.Subregion
	found, err := r.getJSON(ctx, fmt.Sprintf(subregionsKeyFmt, regionKey), &subregions)
	if err != nil || !found {
		return nil, err
	}
	return subregions, nil
}

func (r *cacheRepository) SetSubregions(ctx context.Context, regionKey string, subregions []domain.Subregion, ttl time.Duration) error {
	return r.setJSON(ctx, fmt.Sprintf(subregionsKeyFmt, regionKey), subregions, ttl)
}
