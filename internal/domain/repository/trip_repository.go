package repository

import (
	"context"

	"github.com/route-service/internal/domain"
)

// TripRepository определяет методы для работы с поездками
type TripRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
	Create(ctx context.Context, trip *domain.Trip) error

	// ListByRoute returns trips on a route, newest first.
	ListByRoute(ctx context.Context, routeID int64) ([]*domain.Trip, error)

	// ListByUser returns trips authored by userID, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Trip, error)

	// StatsByRouteIDs returns trip count and average rating per route.
	StatsByRouteIDs(ctx context.Context, routeIDs []int64) ([]domain.RouteTripStats, error)
}

// RelationRepository - связи пользователь-цель (сохраненные маршруты, лайки)
type RelationRepository interface {
	// Toggle flips the relation and returns the resulting state.
	Toggle(ctx context.Context, relation domain.Relation, userID, targetID int64) (bool, error)

	// ActiveTargets returns the subset of targetIDs related to userID.
	ActiveTargets(ctx context.Context, relation domain.Relation, userID int64, targetIDs []int64) ([]int64, error)

	// LikeCounts returns like counts for the given trips. Trips without likes are absent.
	LikeCounts(ctx context.Context, tripIDs []int64) ([]domain.TripLikeCount, error)
}
