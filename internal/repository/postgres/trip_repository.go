package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
)

const tripColumns = `
	id, user_id, route_id, title, notes, coordinates, date, rating, created_at, updated_at`

type tripRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewTripRepository создает новый экземпляр TripRepository
func NewTripRepository(db *DB) repository.TripRepository {
	return &tripRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *tripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	var trip domain.Trip
	err := r.db.GetContext(ctx, &trip, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, id)
	if isNoRows(err) {
		return nil, errors.ErrTripNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get trip by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &trip, nil
}

func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (user_id, route_id, title, notes, coordinates, date, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		trip.UserID, trip.RouteID, trip.Title, trip.Notes, trip.Coordinates, trip.Date, trip.Rating,
	).Scan(&trip.ID, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create trip", zap.Int64("user_id", trip.UserID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *tripRepository) ListByRoute(ctx context.Context, routeID int64) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE route_id = $1 ORDER BY created_at DESC, id DESC`

	var trips []*domain.Trip
	if err := r.db.SelectContext(ctx, &trips, query, routeID); err != nil {
		r.logger.Error("Failed to list trips by route", zap.Int64("route_id", routeID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return trips, nil
}

func (r *tripRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	var trips []*domain.Trip
	if err := r.db.SelectContext(ctx, &trips, query, userID); err != nil {
		r.logger.Error("Failed to list trips by user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return trips, nil
}

// StatsByRouteIDs - количество поездок и средний рейтинг; AVG игнорирует NULL
func (r *tripRepository) StatsByRouteIDs(ctx context.Context, routeIDs []int64) ([]domain.RouteTripStats, error) {
	if len(routeIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT route_id, COUNT(*) AS trip_count, AVG(rating)::float8 AS average_rating
		FROM trips
		WHERE route_id IN (?)
		GROUP BY route_id`

	var stats []domain.RouteTripStats
	if err := selectIn(ctx, r.db, &stats, query, routeIDs); err != nil {
		r.logger.Error("Failed to get trip stats", zap.Int("routes", len(routeIDs)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stats, nil
}
