package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
)

const routeColumns = `
	r.id, r.name, r.description, r.coordinates, r.owner_id, r.is_public,
	r.distance, r.duration, r.region_id, r.subregion_id, r.created_at, r.updated_at`

type routeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewRouteRepository создает новый экземпляр RouteRepository
func NewRouteRepository(db *DB) repository.RouteRepository {
	return &routeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetByID возвращает маршрут по ID без учета видимости
func (r *routeRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes r WHERE r.id = $1`

	var route domain.Route
	err := r.db.GetContext(ctx, &route, query, id)
	if isNoRows(err) {
		return nil, errors.ErrRouteNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get route by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &route, nil
}

// GetByIDs возвращает существующие маршруты из ids одним запросом; отсутствующие пропускаются
func (r *routeRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Route, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + routeColumns + ` FROM routes r WHERE r.id IN (?)`

	var routes []*domain.Route
	if err := selectIn(ctx, r.db, &routes, query, ids); err != nil {
		r.logger.Error("Failed to get routes by IDs", zap.Int("routes", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return routes, nil
}

// ListVisible возвращает маршруты, видимые пользователю, с фильтрами региона и поиска
func (r *routeRepository) ListVisible(ctx context.Context, filter domain.RouteFilter, viewerID *int64) ([]*domain.Route, error) {
	var (
		conditions []string
		args       []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if viewerID != nil {
		conditions = append(conditions, fmt.Sprintf("(r.owner_id IS NULL OR r.is_public OR r.owner_id = %s)", arg(*viewerID)))
	} else {
		conditions = append(conditions, "(r.owner_id IS NULL OR r.is_public)")
	}

	if filter.RegionKey != "" {
		conditions = append(conditions, fmt.Sprintf("r.region_id = (SELECT id FROM regions WHERE key = %s)", arg(filter.RegionKey)))
	}
	if filter.SubregionKey != "" {
		conditions = append(conditions, fmt.Sprintf("r.subregion_id = (SELECT id FROM subregions WHERE key = %s)", arg(filter.SubregionKey)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		p := arg("%" + escapeLike(q) + "%")
		conditions = append(conditions, fmt.Sprintf("(r.name ILIKE %s OR r.description ILIKE %s)", p, p))
	}
	if filter.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("r.owner_id = %s", arg(*filter.OwnerID)))
	}

	query := `SELECT ` + routeColumns + ` FROM routes r WHERE ` +
		strings.Join(conditions, " AND ") +
		` ORDER BY r.created_at DESC, r.id DESC`

	var routes []*domain.Route
	if err := r.db.SelectContext(ctx, &routes, query, args...); err != nil {
		r.logger.Error("Failed to list visible routes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return routes, nil
}

// ListByOwner возвращает все маршруты владельца, включая приватные
func (r *routeRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes r
		WHERE r.owner_id = $1
		ORDER BY r.created_at DESC, r.id DESC`

	var routes []*domain.Route
	if err := r.db.SelectContext(ctx, &routes, query, ownerID); err != nil {
		r.logger.Error("Failed to list routes by owner", zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return routes, nil
}

// ListSavedBy возвращает сохраненные пользователем маршруты, которые ему все еще видны
func (r *routeRepository) ListSavedBy(ctx context.Context, userID int64) ([]*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes r
		JOIN saved_routes s ON s.route_id = r.id
		WHERE s.user_id = $1
		  AND (r.owner_id IS NULL OR r.is_public OR r.owner_id = $1)
		ORDER BY s.created_at DESC, s.id DESC`

	var routes []*domain.Route
	if err := r.db.SelectContext(ctx, &routes, query, userID); err != nil {
		r.logger.Error("Failed to list saved routes", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return routes, nil
}

func (r *routeRepository) Create(ctx context.Context, route *domain.Route) error {
	query := `
		INSERT INTO routes (name, description, coordinates, owner_id, is_public,
			distance, duration, region_id, subregion_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		route.Name, route.Description, route.Coordinates, route.OwnerID, route.IsPublic,
		route.Distance, route.Duration, route.RegionID, route.SubregionID,
	).Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create route", zap.String("name", route.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// Update сохраняет редактируемые поля маршрута (название, описание, координаты, метрики, регион)
func (r *routeRepository) Update(ctx context.Context, route *domain.Route) error {
	query := `
		UPDATE routes
		SET name = $2, description = $3, coordinates = $4, distance = $5, duration = $6,
			region_id = $7, subregion_id = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		route.ID, route.Name, route.Description, route.Coordinates,
		route.Distance, route.Duration, route.RegionID, route.SubregionID,
	).Scan(&route.UpdatedAt)
	if isNoRows(err) {
		return errors.ErrRouteNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update route", zap.Int64("id", route.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *routeRepository) SetPrivacy(ctx context.Context, id int64, isPublic bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE routes SET is_public = $2, updated_at = NOW() WHERE id = $1`, id, isPublic)
	if err != nil {
		r.logger.Error("Failed to set route privacy", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return expectAffected(res, errors.ErrRouteNotFound)
}

// UpdateMetrics сохраняет расстояние и время; nil метрики обнуляют оба поля
func (r *routeRepository) UpdateMetrics(ctx context.Context, id int64, metrics *domain.RouteMetrics) error {
	var distance, duration *int
	if metrics != nil {
		distance = &metrics.DistanceMeters
		duration = &metrics.DurationSeconds
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE routes SET distance = $2, duration = $3, updated_at = NOW() WHERE id = $1`,
		id, distance, duration)
	if err != nil {
		r.logger.Error("Failed to update route metrics", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return expectAffected(res, errors.ErrRouteNotFound)
}

func (r *routeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete route", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return expectAffected(res, errors.ErrRouteNotFound)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
