package repository

import (
	"context"

	"github.com/route-service/internal/domain"
)

// RouteRepository определяет методы для работы с маршрутами
type RouteRepository interface {
	// GetByID returns the route regardless of visibility.
	GetByID(ctx context.Context, id int64) (*domain.Route, error)

	// GetByIDs returns the routes that exist among ids in one query, regardless of visibility.
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Route, error)

	// ListVisible returns routes visible to viewerID (nil = anonymous), newest first.
	ListVisible(ctx context.Context, filter domain.RouteFilter, viewerID *int64) ([]*domain.Route, error)

	// ListByOwner returns all routes owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Route, error)

	// ListSavedBy returns routes saved by userID that are visible to that user.
	ListSavedBy(ctx context.Context, userID int64) ([]*domain.Route, error)

	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	SetPrivacy(ctx context.Context, id int64, isPublic bool) error
	UpdateMetrics(ctx context.Context, id int64, metrics *domain.RouteMetrics) error
	Delete(ctx context.Context, id int64) error
}

// PhotoRepository - фотографии маршрутов и поездок
type PhotoRepository interface {
	CreateRoutePhoto(ctx context.Context, photo *domain.Photo) error
	CreateTripPhoto(ctx context.Context, photo *domain.TripPhoto) error

	// PhotosByRouteIDs returns direct route photos ordered by creation time.
	PhotosByRouteIDs(ctx context.Context, routeIDs []int64) ([]domain.Photo, error)

	// TripPhotosByRouteIDs returns photos of trips on the given routes, ordered by
	// trip creation time and then photo creation time.
	TripPhotosByRouteIDs(ctx context.Context, routeIDs []int64) ([]domain.TripPhoto, error)

	// TripPhotosByTripIDs returns photos of the given trips ordered by creation time.
	TripPhotosByTripIDs(ctx context.Context, tripIDs []int64) ([]domain.TripPhoto, error)
}
