package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/repository/cache"
)

func newTestCache(t *testing.T) (*redis.Client, *cacheFixture) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client, &cacheFixture{repo: cache.NewCacheRepository(cache.NewRedisForTest(client, zap.NewNop()))}
}

type cacheFixture struct {
	repo repository.CacheRepository
}

func TestRouteMetricsKey(t *testing.T) {
	a := domain.Coordinates{{Lat: 35.1, Lng: 139.2}, {Lat: 35.3, Lng: 139.4}}
	b := domain.Coordinates{{Lat: 35.3, Lng: 139.4}, {Lat: 35.1, Lng: 139.2}}

	assert.Equal(t, cache.RouteMetricsKey(a), cache.RouteMetricsKey(a.Clone()))
	assert.NotEqual(t, cache.RouteMetricsKey(a), cache.RouteMetricsKey(b), "order must matter")
	assert.Contains(t, cache.RouteMetricsKey(a), "directions:metrics:")
}

func TestCacheRepository_RouteMetrics(t *testing.T) {
	client, f := newTestCache(t)
	ctx := context.Background()

	coords := domain.Coordinates{{Lat: 1.5, Lng: 2.5}, {Lat: 3.5, Lng: 4.5}}
	client.Del(ctx, cache.RouteMetricsKey(coords))

	miss, err := f.repo.GetRouteMetrics(ctx, coords)
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, f.repo.SetRouteMetrics(ctx, coords, &domain.RouteMetrics{DistanceMeters: 1500, DurationSeconds: 600}, time.Minute))

	hit, err := f.repo.GetRouteMetrics(ctx, coords)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, 1500, hit.DistanceMeters)
	assert.Equal(t, 600, hit.DurationSeconds)
}

func TestCacheRepository_Regions(t *testing.T) {
	client, f := newTestCache(t)
	ctx := context.Background()
	client.Del(ctx, "regions:all")

	regions := []domain.Region{{ID: 1, Key: "kanto", Name: "Kanto"}}
	require.NoError(t, f.repo.SetRegions(ctx, regions, time.Minute))

	got, err := f.repo.GetRegions(ctx)
	require.NoError(t, err)
	assert.Equal(t, regions, got)
}
