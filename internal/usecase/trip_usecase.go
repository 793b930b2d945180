package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/pkg/utils"
	"github.com/route-service/internal/usecase/dto"
)

const dateLayout = "2006-01-02"

// TripUseCase - жизненный цикл поездок
type TripUseCase struct {
	trips     repository.TripRepository
	routes    repository.RouteRepository
	photos    repository.PhotoRepository
	relations repository.RelationRepository
	photoUC   *PhotoUseCase
	toggler   *RelationToggler
	logger    *zap.Logger
}

func NewTripUseCase(
	trips repository.TripRepository,
	routes repository.RouteRepository,
	photos repository.PhotoRepository,
	relations repository.RelationRepository,
	photoUC *PhotoUseCase,
	toggler *RelationToggler,
	logger *zap.Logger,
) *TripUseCase {
	return &TripUseCase{
		trips:     trips,
		routes:    routes,
		photos:    photos,
		relations: relations,
		photoUC:   photoUC,
		toggler:   toggler,
		logger:    logger,
	}
}

// CreateTrip validates input, inserts the trip and then ingests each photo under it.
// A photo failure stops the loop; the trip is kept and its id travels in the error details.
func (uc *TripUseCase) CreateTrip(ctx context.Context, authorID int64, req dto.CreateTripRequest, files []dto.FileUpload) (*dto.CreateTripResponse, error) {
	if !domain.ValidRating(req.Rating) {
		return nil, errors.ErrInvalidRating
	}
	if req.Title == "" {
		return nil, errors.Validation("Title is required", map[string]interface{}{"title": "required"})
	}

	date, err := parseTripDate(req.Date)
	if err != nil {
		return nil, errors.Validation("Invalid trip date", map[string]interface{}{"date": req.Date})
	}

	for i, c := range req.Coordinates {
		if !utils.ValidateCoordinates(c.Lat, c.Lng) {
			return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{"index": i})
		}
	}
	coords := dto.ToCoordinates(req.Coordinates)

	if req.RouteID != nil {
		route, err := uc.routes.GetByID(ctx, *req.RouteID)
		if err != nil {
			return nil, err
		}
		if !domain.IsVisible(route, &authorID) {
			return nil, errors.ErrRouteNotFound
		}
		if len(coords) == 0 {
			coords = route.Coordinates.Clone()
		}
	}

	for _, file := range files {
		if err := uc.photoUC.validateFile(file); err != nil {
			return nil, err
		}
	}

	trip := &domain.Trip{
		UserID:      authorID,
		RouteID:     req.RouteID,
		Title:       req.Title,
		Notes:       req.Notes,
		Coordinates: coords,
		Date:        date,
		Rating:      req.Rating,
	}
	if err := uc.trips.Create(ctx, trip); err != nil {
		return nil, err
	}

	resp := &dto.CreateTripResponse{ID: trip.ID, PhotoURLs: make([]string, 0, len(files))}

	for i, file := range files {
		uploaded, err := uc.photoUC.Ingest(ctx, dto.PhotoUpload{
			Parent:     domain.PhotoParentTrip,
			ParentID:   trip.ID,
			UploaderID: authorID,
			File:       file,
		})
		if err != nil {
			uc.logger.Warn("Trip created with partial photos",
				zap.Int64("trip_id", trip.ID),
				zap.Int("uploaded", i),
				zap.Int("requested", len(files)),
				zap.Error(err))

			return nil, photoFailure(err, trip.ID, resp.PhotoURLs)
		}
		resp.PhotoURLs = append(resp.PhotoURLs, uploaded.URL)
	}

	uc.logger.Info("Trip created",
		zap.Int64("trip_id", trip.ID),
		zap.Int64("user_id", authorID),
		zap.Int("photos", len(resp.PhotoURLs)))

	return resp, nil
}

// GetTrip returns one enriched trip. Trips on routes the viewer cannot see are not found.
func (uc *TripUseCase) GetTrip(ctx context.Context, id int64, viewerID *int64) (*dto.TripView, error) {
	trip, err := uc.visibleTrip(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	views, err := uc.EnrichTrips(ctx, []*domain.Trip{trip}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListTripsForRoute returns trips on a visible route, newest first.
func (uc *TripUseCase) ListTripsForRoute(ctx context.Context, routeID int64, viewerID *int64) ([]dto.TripView, error) {
	route, err := uc.routes.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if !domain.IsVisible(route, viewerID) {
		return nil, errors.ErrRouteNotFound
	}

	trips, err := uc.trips.ListByRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	return uc.EnrichTrips(ctx, trips, viewerID)
}

// ListTripsByUser returns a user's trips, hiding those attached to routes the viewer cannot see.
func (uc *TripUseCase) ListTripsByUser(ctx context.Context, userID int64, viewerID *int64) ([]dto.TripView, error) {
	trips, err := uc.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	routeIDs := make([]int64, 0, len(trips))
	seen := make(map[int64]struct{}, len(trips))
	for _, t := range trips {
		if t.RouteID == nil {
			continue
		}
		if _, ok := seen[*t.RouteID]; !ok {
			seen[*t.RouteID] = struct{}{}
			routeIDs = append(routeIDs, *t.RouteID)
		}
	}

	hidden := make(map[int64]bool, len(routeIDs))
	if len(routeIDs) > 0 {
		routes, err := uc.routes.GetByIDs(ctx, routeIDs)
		if err != nil {
			return nil, err
		}
		for _, r := range routes {
			hidden[r.ID] = !domain.IsVisible(r, viewerID)
		}
	}

	// поездки на удаленных маршрутах в hidden не попадают и остаются видимыми
	visible := make([]*domain.Trip, 0, len(trips))
	for _, t := range trips {
		if t.RouteID != nil && hidden[*t.RouteID] {
			continue
		}
		visible = append(visible, t)
	}

	return uc.EnrichTrips(ctx, visible, viewerID)
}

// ToggleTripLike flips the like of userID on a trip and returns the new like count.
func (uc *TripUseCase) ToggleTripLike(ctx context.Context, userID, tripID int64) (*dto.ToggleResult, error) {
	if _, err := uc.visibleTrip(ctx, tripID, &userID); err != nil {
		return nil, err
	}
	return uc.toggler.Toggle(ctx, domain.RelationTripLike, userID, tripID)
}

// EnrichTrips батчем подтягивает фото, количество лайков и лайки зрителя
func (uc *TripUseCase) EnrichTrips(ctx context.Context, trips []*domain.Trip, viewerID *int64) ([]dto.TripView, error) {
	views := make([]dto.TripView, 0, len(trips))
	if len(trips) == 0 {
		return views, nil
	}

	ids := make([]int64, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}

	var (
		photos   []domain.TripPhoto
		counts   []domain.TripLikeCount
		likedIDs []int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		photos, err = uc.photos.TripPhotosByTripIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = uc.relations.LikeCounts(gctx, ids)
		return err
	})
	if viewerID != nil {
		g.Go(func() error {
			var err error
			likedIDs, err = uc.relations.ActiveTargets(gctx, domain.RelationTripLike, *viewerID, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to enrich trips", zap.Int("trips", len(trips)), zap.Error(err))
		return nil, err
	}

	photosByTrip := make(map[int64][]string, len(trips))
	for _, p := range photos {
		photosByTrip[p.TripID] = append(photosByTrip[p.TripID], p.URL)
	}
	countByTrip := make(map[int64]int, len(counts))
	for _, c := range counts {
		countByTrip[c.TripID] = c.Count
	}
	liked := make(map[int64]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}

	for _, t := range trips {
		view := dto.TripView{
			ID:          t.ID,
			UserID:      t.UserID,
			RouteID:     t.RouteID,
			Title:       t.Title,
			Notes:       t.Notes,
			Coordinates: t.Coordinates,
			Date:        t.Date,
			Rating:      t.Rating,
			Photos:      []string{},
			LikeCount:   countByTrip[t.ID],
			CreatedAt:   t.CreatedAt,
		}
		if view.Coordinates == nil {
			view.Coordinates = []domain.Coordinate{}
		}
		if urls := photosByTrip[t.ID]; urls != nil {
			view.Photos = urls
		}
		if viewerID != nil {
			_, isLiked := liked[t.ID]
			view.IsLiked = &isLiked
		}
		views = append(views, view)
	}

	return views, nil
}

func (uc *TripUseCase) visibleTrip(ctx context.Context, id int64, viewerID *int64) (*domain.Trip, error) {
	trip, err := uc.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := uc.routeVisible(ctx, trip.RouteID, viewerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.ErrTripNotFound
	}
	return trip, nil
}

// routeVisible: поездки без маршрута видны всем
func (uc *TripUseCase) routeVisible(ctx context.Context, routeID, viewerID *int64) (bool, error) {
	if routeID == nil {
		return true, nil
	}

	route, err := uc.routes.GetByID(ctx, *routeID)
	switch {
	case err == nil:
		return domain.IsVisible(route, viewerID), nil
	case errors.Is(err, errors.ErrRouteNotFound):
		// маршрут удален между запросами; поездка считается самостоятельной
		return true, nil
	default:
		return false, err
	}
}

// photoFailure keeps validation errors as they are and wraps the rest as a dependency failure.
// Both carry the id of the already saved trip.
func photoFailure(err error, tripID int64, uploaded []string) error {
	details := map[string]interface{}{
		"trip_id":         tripID,
		"uploaded_photos": uploaded,
	}
	if appErr, ok := errors.As(err); ok && appErr.Code == errors.CodeValidation {
		for k, v := range appErr.Details {
			details[k] = v
		}
		return appErr.WithDetails(details)
	}
	return errors.Dependency("Trip saved but photo upload failed", err).WithDetails(details)
}

func parseTripDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
