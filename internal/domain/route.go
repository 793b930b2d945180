package domain

import "time"

// Route - именованная последовательность координат
type Route struct {
	ID          int64       `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description *string     `json:"description,omitempty" db:"description"`
	Coordinates Coordinates `json:"coordinates" db:"coordinates"`
	OwnerID     *int64      `json:"owner_id,omitempty" db:"owner_id"`
	IsPublic    bool        `json:"is_public" db:"is_public"`
	Distance    *int        `json:"distance,omitempty" db:"distance"` // meters
	Duration    *int        `json:"duration,omitempty" db:"duration"` // seconds
	RegionID    *int64      `json:"region_id,omitempty" db:"region_id"`
	SubregionID *int64      `json:"subregion_id,omitempty" db:"subregion_id"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// IsSystem reports whether the route was seeded rather than created by a user.
func (r *Route) IsSystem() bool {
	return r.OwnerID == nil
}

// EffectivelyPublic - системные маршруты всегда публичны, флаг is_public игнорируется
func (r *Route) EffectivelyPublic() bool {
	return r.IsSystem() || r.IsPublic
}

// IsOwnedBy reports whether userID owns the route.
func (r *Route) IsOwnedBy(userID int64) bool {
	return r.OwnerID != nil && *r.OwnerID == userID
}

// Photo - фотография, прикрепленная непосредственно к маршруту
type Photo struct {
	ID        int64     `json:"id" db:"id"`
	RouteID   int64     `json:"route_id" db:"route_id"`
	UserID    *int64    `json:"user_id,omitempty" db:"user_id"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RouteFilter - фильтры списка маршрутов
type RouteFilter struct {
	RegionKey    string
	SubregionKey string
	Query        string
	OwnerID      *int64
}

// RouteTripStats - агрегаты поездок по маршруту
type RouteTripStats struct {
	RouteID       int64    `db:"route_id"`
	TripCount     int      `db:"trip_count"`
	AverageRating *float64 `db:"average_rating"`
}

// RouteMetrics - расстояние и время в пути от провайдера маршрутов
type RouteMetrics struct {
	DistanceMeters  int `json:"distance_meters"`
	DurationSeconds int `json:"duration_seconds"`
}
