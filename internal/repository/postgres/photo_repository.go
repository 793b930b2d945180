package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
)

type photoRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPhotoRepository создает новый экземпляр PhotoRepository
func NewPhotoRepository(db *DB) repository.PhotoRepository {
	return &photoRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *photoRepository) CreateRoutePhoto(ctx context.Context, photo *domain.Photo) error {
	query := `INSERT INTO photos (route_id, user_id, url) VALUES ($1, $2, $3) RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query, photo.RouteID, photo.UserID, photo.URL).
		Scan(&photo.ID, &photo.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert route photo", zap.Int64("route_id", photo.RouteID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *photoRepository) CreateTripPhoto(ctx context.Context, photo *domain.TripPhoto) error {
	query := `INSERT INTO trip_photos (trip_id, url) VALUES ($1, $2) RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query, photo.TripID, photo.URL).
		Scan(&photo.ID, &photo.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert trip photo", zap.Int64("trip_id", photo.TripID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

// PhotosByRouteIDs - прямые фото маршрутов по возрастанию времени создания
func (r *photoRepository) PhotosByRouteIDs(ctx context.Context, routeIDs []int64) ([]domain.Photo, error) {
	if len(routeIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, route_id, user_id, url, created_at
		FROM photos
		WHERE route_id IN (?)
		ORDER BY created_at ASC, id ASC`

	var photos []domain.Photo
	if err := selectIn(ctx, r.db, &photos, query, routeIDs); err != nil {
		r.logger.Error("Failed to get photos by route IDs", zap.Int("routes", len(routeIDs)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return photos, nil
}

// TripPhotosByRouteIDs - фото поездок по маршрутам в порядке создания поездок, затем фото
func (r *photoRepository) TripPhotosByRouteIDs(ctx context.Context, routeIDs []int64) ([]domain.TripPhoto, error) {
	if len(routeIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT tp.id, tp.trip_id, t.route_id, tp.url, tp.created_at
		FROM trip_photos tp
		JOIN trips t ON t.id = tp.trip_id
		WHERE t.route_id IN (?)
		ORDER BY t.created_at ASC, t.id ASC, tp.created_at ASC, tp.id ASC`

	var photos []domain.TripPhoto
	if err := selectIn(ctx, r.db, &photos, query, routeIDs); err != nil {
		r.logger.Error("Failed to get trip photos by route IDs", zap.Int("routes", len(routeIDs)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return photos, nil
}

func (r *photoRepository) TripPhotosByTripIDs(ctx context.Context, tripIDs []int64) ([]domain.TripPhoto, error) {
	if len(tripIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT tp.id, tp.trip_id, t.route_id, tp.url, tp.created_at
		FROM trip_photos tp
		JOIN trips t ON t.id = tp.trip_id
		WHERE tp.trip_id IN (?)
		ORDER BY tp.created_at ASC, tp.id ASC`

	var photos []domain.TripPhoto
	if err := selectIn(ctx, r.db, &photos, query, tripIDs); err != nil {
		r.logger.Error("Failed to get trip photos by trip IDs", zap.Int("trips", len(tripIDs)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return photos, nil
}
