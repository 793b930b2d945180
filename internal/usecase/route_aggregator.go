package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/utils"
	"github.com/route-service/internal/usecase/dto"
)

// RouteAggregator собирает RouteView: фото, статистику поездок и флаг сохранения.
// На любой размер пачки выполняется ровно по одному запросу на каждую связь.
type RouteAggregator struct {
	photos    repository.PhotoRepository
	trips     repository.TripRepository
	relations repository.RelationRepository
	logger    *zap.Logger
}

func NewRouteAggregator(
	photos repository.PhotoRepository,
	trips repository.TripRepository,
	relations repository.RelationRepository,
	logger *zap.Logger,
) *RouteAggregator {
	return &RouteAggregator{
		photos:    photos,
		trips:     trips,
		relations: relations,
		logger:    logger,
	}
}

// BuildRouteView builds the view of a single route.
func (a *RouteAggregator) BuildRouteView(ctx context.Context, route *domain.Route, viewerID *int64) (*dto.RouteView, error) {
	views, err := a.BuildRouteViews(ctx, []*domain.Route{route}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// BuildRouteViews builds views for routes, preserving their order.
func (a *RouteAggregator) BuildRouteViews(ctx context.Context, routes []*domain.Route, viewerID *int64) ([]dto.RouteView, error) {
	views := make([]dto.RouteView, 0, len(routes))
	if len(routes) == 0 {
		return views, nil
	}

	ids := make([]int64, len(routes))
	for i, r := range routes {
		ids[i] = r.ID
	}

	var (
		direct    []domain.Photo
		tripPhoto []domain.TripPhoto
		stats     []domain.RouteTripStats
		savedIDs  []int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		direct, err = a.photos.PhotosByRouteIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		tripPhoto, err = a.photos.TripPhotosByRouteIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = a.trips.StatsByRouteIDs(gctx, ids)
		return err
	})
	if viewerID != nil {
		g.Go(func() error {
			var err error
			savedIDs, err = a.relations.ActiveTargets(gctx, domain.RelationSavedRoute, *viewerID, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Error("Failed to aggregate routes", zap.Int("routes", len(routes)), zap.Error(err))
		return nil, err
	}

	// прямые фото раньше фото поездок, порядок внутри групп задан запросами
	photoURLs := make(map[int64][]string, len(routes))
	for _, p := range direct {
		photoURLs[p.RouteID] = append(photoURLs[p.RouteID], p.URL)
	}
	for _, p := range tripPhoto {
		if p.RouteID == nil {
			continue
		}
		photoURLs[*p.RouteID] = append(photoURLs[*p.RouteID], p.URL)
	}

	statsByRoute := make(map[int64]domain.RouteTripStats, len(stats))
	for _, s := range stats {
		statsByRoute[s.RouteID] = s
	}

	saved := make(map[int64]struct{}, len(savedIDs))
	for _, id := range savedIDs {
		saved[id] = struct{}{}
	}

	for _, r := range routes {
		view := newRouteView(r, viewerID)

		if urls := photoURLs[r.ID]; urls != nil {
			view.Photos = urls
		}
		if s, ok := statsByRoute[r.ID]; ok {
			view.TripCount = s.TripCount
			view.AverageRating = s.AverageRating
		}
		if viewerID != nil {
			_, isSaved := saved[r.ID]
			view.IsSaved = &isSaved
		}

		views = append(views, view)
	}

	return views, nil
}

func newRouteView(r *domain.Route, viewerID *int64) dto.RouteView {
	view := dto.RouteView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Coordinates: r.Coordinates,
		OwnerID:     r.OwnerID,
		IsPublic:    r.EffectivelyPublic(),
		IsOwner:     viewerID != nil && r.IsOwnedBy(*viewerID),
		Distance:    r.Distance,
		Duration:    r.Duration,
		RegionID:    r.RegionID,
		SubregionID: r.SubregionID,
		Photos:      []string{},
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if view.Coordinates == nil {
		view.Coordinates = []domain.Coordinate{}
	}
	if r.Distance != nil {
		text := utils.FormatDistance(*r.Distance)
		view.DistanceText = &text
	}
	if r.Duration != nil {
		text := utils.FormatDuration(*r.Duration)
		view.DurationText = &text
	}
	return view
}
