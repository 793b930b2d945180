package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
)

type regionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewRegionRepository создает репозиторий справочника регионов
func NewRegionRepository(db *DB) repository.RegionRepository {
	return &regionRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *regionRepository) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var regions []domain.Region
	if err := r.db.SelectContext(ctx, &regions, `SELECT id, key, name FROM regions ORDER BY id`); err != nil {
		r.logger.Error("Failed to list regions", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return regions, nil
}

func (r *regionRepository) GetRegionByKey(ctx context.Context, key string) (*domain.Region, error) {
	var region domain.Region
	err := r.db.GetContext(ctx, &region, `SELECT id, key, name FROM regions WHERE key = $1`, key)
	if isNoRows(err) {
		return nil, errors.ErrRegionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get region", zap.String("key", key), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &region, nil
}

func (r *regionRepository) ListSubregions(ctx context.Context, regionKey string) ([]domain.Subregion, error) {
	query := `
		SELECT s.id, s.region_id, r.key AS region_key, s.key, s.name
		FROM subregions s
		JOIN regions r ON r.id = s.region_id
		WHERE r.key = $1
		ORDER BY s.id`

	var subregions []domain.Subregion
	if err := r.db.SelectContext(ctx, &subregions, query, regionKey); err != nil {
		r.logger.Error("Failed to list subregions", zap.String("region", regionKey), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return subregions, nil
}
