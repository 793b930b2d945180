package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	apperrors "github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/usecase"
)

func TestRegionUseCase_ListRegions(t *testing.T) {
	ctx := context.Background()
	regions := []domain.Region{{ID: 1, Key: "kanto", Name: "Kanto"}}

	t.Run("cache hit", func(t *testing.T) {
		repo := &MockRegionRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewRegionUseCase(repo, cache, time.Hour, zap.NewNop())

		cache.On("GetRegions", ctx).Return(regions, nil)

		got, err := uc.ListRegions(ctx)
		require.NoError(t, err)
		assert.Equal(t, regions, got)
		repo.AssertNotCalled(t, "ListRegions", mock.Anything)
	})

	t.Run("cache miss fills cache", func(t *testing.T) {
		repo := &MockRegionRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewRegionUseCase(repo, cache, time.Hour, zap.NewNop())

		cache.On("GetRegions", ctx).Return(nil, nil)
		repo.On("ListRegions", ctx).Return(regions, nil)
		cache.On("SetRegions", ctx, regions, time.Hour).Return(nil)

		got, err := uc.ListRegions(ctx)
		require.NoError(t, err)
		assert.Equal(t, regions, got)
		cache.AssertExpectations(t)
	})
}

func TestRegionUseCase_ListSubregions(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown region", func(t *testing.T) {
		repo := &MockRegionRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewRegionUseCase(repo, cache, time.Hour, zap.NewNop())

		cache.On("GetSubregions", ctx, "atlantis").Return(nil, nil)
		repo.On("GetRegionByKey", ctx, "atlantis").Return(nil, apperrors.ErrRegionNotFound)

		_, err := uc.ListSubregions(ctx, "atlantis")
		assert.True(t, apperrors.Is(err, apperrors.ErrRegionNotFound))
		cache.AssertNotCalled(t, "SetSubregions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("known region", func(t *testing.T) {
		repo := &MockRegionRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewRegionUseCase(repo, cache, time.Hour, zap.NewNop())

		subs := []domain.Subregion{{ID: 1, RegionID: 3, RegionKey: "kanto", Key: "tokyo", Name: "Tokyo"}}
		cache.On("GetSubregions", ctx, "kanto").Return(nil, nil)
		repo.On("GetRegionByKey", ctx, "kanto").Return(&domain.Region{ID: 3, Key: "kanto"}, nil)
		repo.On("ListSubregions", ctx, "kanto").Return(subs, nil)
		cache.On("SetSubregions", ctx, "kanto", subs, time.Hour).Return(nil)

		got, err := uc.ListSubregions(ctx, "kanto")
		require.NoError(t, err)
		assert.Equal(t, subs, got)
	})
}
