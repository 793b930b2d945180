package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
)

// RegionUseCase отдает справочник регионов через Redis-кеш
type RegionUseCase struct {
	regions  repository.RegionRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewRegionUseCase(regions repository.RegionRepository, cache repository.CacheRepository, cacheTTL time.Duration, logger *zap.Logger) *RegionUseCase {
	return &RegionUseCase{
		regions:  regions,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (uc *RegionUseCase) ListRegions(ctx context.Context) ([]domain.Region, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetRegions(ctx)
		if err != nil {
			uc.logger.Warn("Failed to read regions from cache", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	regions, err := uc.regions.ListRegions(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetRegions(ctx, regions, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache regions", zap.Error(err))
		}
	}
	return regions, nil
}

// ListSubregions returns the subregions of regionKey; unknown regions are not found.
func (uc *RegionUseCase) ListSubregions(ctx context.Context, regionKey string) ([]domain.Subregion, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetSubregions(ctx, regionKey)
		if err != nil {
			uc.logger.Warn("Failed to read subregions from cache",
				zap.String("region", regionKey),
				zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	if _, err := uc.regions.GetRegionByKey(ctx, regionKey); err != nil {
		return nil, err
	}

	subregions, err := uc.regions.ListSubregions(ctx, regionKey)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetSubregions(ctx, regionKey, subregions, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache subregions", zap.String("region", regionKey), zap.Error(err))
		}
	}
	return subregions, nil
}
