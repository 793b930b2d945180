package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/pkg/utils"
	"github.com/route-service/internal/usecase/dto"
)

// RouteUseCase - операции над маршрутами с учетом видимости и владения
type RouteUseCase struct {
	routes     repository.RouteRepository
	aggregator *RouteAggregator
	toggler    *RelationToggler
	metrics    *RouteMetricsService
	stream     repository.StreamRepository
	logger     *zap.Logger
}

func NewRouteUseCase(
	routes repository.RouteRepository,
	aggregator *RouteAggregator,
	toggler *RelationToggler,
	metrics *RouteMetricsService,
	stream repository.StreamRepository,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		routes:     routes,
		aggregator: aggregator,
		toggler:    toggler,
		metrics:    metrics,
		stream:     stream,
		logger:     logger,
	}
}

// ListRoutes returns routes visible to the viewer, optionally filtered by region and text.
func (uc *RouteUseCase) ListRoutes(ctx context.Context, req dto.ListRoutesRequest, viewerID *int64) ([]dto.RouteView, error) {
	routes, err := uc.routes.ListVisible(ctx, domain.RouteFilter{
		RegionKey:    req.Region,
		SubregionKey: req.Subregion,
		Query:        req.Query,
	}, viewerID)
	if err != nil {
		return nil, err
	}
	return uc.aggregator.BuildRouteViews(ctx, routes, viewerID)
}

// ListMine returns all routes owned by the viewer.
func (uc *RouteUseCase) ListMine(ctx context.Context, ownerID int64) ([]dto.RouteView, error) {
	routes, err := uc.routes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return uc.aggregator.BuildRouteViews(ctx, routes, &ownerID)
}

// ListSaved returns routes saved by the viewer that are still visible to them.
func (uc *RouteUseCase) ListSaved(ctx context.Context, userID int64) ([]dto.RouteView, error) {
	routes, err := uc.routes.ListSavedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.aggregator.BuildRouteViews(ctx, routes, &userID)
}

// GetRoute возвращает маршрут; невидимый маршрут неотличим от отсутствующего
func (uc *RouteUseCase) GetRoute(ctx context.Context, id int64, viewerID *int64) (*dto.RouteView, error) {
	route, err := uc.visibleRoute(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	return uc.aggregator.BuildRouteView(ctx, route, viewerID)
}

// CreateRoute creates a user route. Metrics are computed synchronously and left
// empty when the routing provider is unavailable.
func (uc *RouteUseCase) CreateRoute(ctx context.Context, ownerID int64, req dto.CreateRouteRequest) (*dto.CreateRouteResponse, error) {
	coords, err := validRouteCoordinates(req.Coordinates)
	if err != nil {
		return nil, err
	}

	route := &domain.Route{
		Name:        req.Name,
		Description: req.Description,
		Coordinates: coords,
		OwnerID:     &ownerID,
		IsPublic:    req.IsPublic,
		RegionID:    req.RegionID,
		SubregionID: req.SubregionID,
	}

	if m := uc.metrics.ComputeMetrics(ctx, coords); m != nil {
		route.Distance = &m.DistanceMeters
		route.Duration = &m.DurationSeconds
	}

	if err := uc.routes.Create(ctx, route); err != nil {
		return nil, err
	}

	uc.logger.Info("Route created",
		zap.Int64("route_id", route.ID),
		zap.Int64("owner_id", ownerID),
		zap.Bool("has_metrics", route.Distance != nil))

	return &dto.CreateRouteResponse{
		ID:       route.ID,
		Distance: route.Distance,
		Duration: route.Duration,
	}, nil
}

// UpdateRoute edits name, description or coordinates. A coordinate change clears
// the metrics and queues their recomputation.
func (uc *RouteUseCase) UpdateRoute(ctx context.Context, id, ownerID int64, req dto.UpdateRouteRequest) (*dto.RouteView, error) {
	route, err := uc.ownedRoute(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		route.Name = *req.Name
	}
	if req.Description != nil {
		route.Description = req.Description
	}

	coordsChanged := false
	if req.Coordinates != nil {
		coords, err := validRouteCoordinates(req.Coordinates)
		if err != nil {
			return nil, err
		}
		route.Coordinates = coords
		route.Distance = nil
		route.Duration = nil
		coordsChanged = true
	}

	if err := uc.routes.Update(ctx, route); err != nil {
		return nil, err
	}

	if coordsChanged {
		event := domain.RouteMetricsRequestedEvent{
			RouteID:     route.ID,
			RequestedBy: ownerID,
			RequestedAt: time.Now().UTC(),
		}
		if err := uc.stream.PublishToStream(ctx, domain.StreamRouteMetrics, event); err != nil {
			// маршрут сохранен, метрики останутся пустыми до следующего редактирования
			uc.logger.Warn("Failed to queue route metrics recomputation",
				zap.Int64("route_id", route.ID),
				zap.Error(err))
		}
	}

	return uc.aggregator.BuildRouteView(ctx, route, &ownerID)
}

// RecomputeMetrics refreshes stored distance and duration from the current coordinates.
func (uc *RouteUseCase) RecomputeMetrics(ctx context.Context, routeID int64) (*domain.RouteMetrics, error) {
	route, err := uc.routes.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}

	m := uc.metrics.ComputeMetrics(ctx, route.Coordinates)
	if err := uc.routes.UpdateMetrics(ctx, routeID, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *RouteUseCase) DeleteRoute(ctx context.Context, id, ownerID int64) error {
	if _, err := uc.ownedRoute(ctx, id, ownerID); err != nil {
		return err
	}
	if err := uc.routes.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Route deleted", zap.Int64("route_id", id), zap.Int64("owner_id", ownerID))
	return nil
}

// SetRoutePrivacy меняет флаг is_public; доступно только владельцу
func (uc *RouteUseCase) SetRoutePrivacy(ctx context.Context, id, ownerID int64, isPublic bool) error {
	if _, err := uc.ownedRoute(ctx, id, ownerID); err != nil {
		return err
	}
	return uc.routes.SetPrivacy(ctx, id, isPublic)
}

// ToggleSaved flips whether userID has saved a visible route.
func (uc *RouteUseCase) ToggleSaved(ctx context.Context, userID, routeID int64) (*dto.ToggleResult, error) {
	if _, err := uc.visibleRoute(ctx, routeID, &userID); err != nil {
		return nil, err
	}
	return uc.toggler.Toggle(ctx, domain.RelationSavedRoute, userID, routeID)
}

func (uc *RouteUseCase) visibleRoute(ctx context.Context, id int64, viewerID *int64) (*domain.Route, error) {
	route, err := uc.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsVisible(route, viewerID) {
		return nil, errors.ErrRouteNotFound
	}
	return route, nil
}

// ownedRoute: невидимый чужой маршрут - NotFound, видимый чужой или системный - Forbidden
func (uc *RouteUseCase) ownedRoute(ctx context.Context, id, ownerID int64) (*domain.Route, error) {
	route, err := uc.visibleRoute(ctx, id, &ownerID)
	if err != nil {
		return nil, err
	}
	if !route.IsOwnedBy(ownerID) {
		return nil, errors.ErrForbidden
	}
	return route, nil
}

func validRouteCoordinates(in []dto.CoordinateInput) (domain.Coordinates, error) {
	if len(in) < 2 {
		return nil, errors.ErrInvalidCoordinates
	}
	for i, c := range in {
		if !utils.ValidateCoordinates(c.Lat, c.Lng) {
			return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{"index": i})
		}
	}
	return dto.ToCoordinates(in), nil
}
