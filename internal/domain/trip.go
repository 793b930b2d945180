package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Trip - отчет пользователя о поездке по маршруту (или самостоятельный)
type Trip struct {
	ID          int64       `json:"id" db:"id"`
	UserID      int64       `json:"user_id" db:"user_id"`
	RouteID     *int64      `json:"route_id,omitempty" db:"route_id"`
	Title       string      `json:"title" db:"title"`
	Notes       *string     `json:"notes,omitempty" db:"notes"`
	Coordinates Coordinates `json:"coordinates" db:"coordinates"`
	Date        time.Time   `json:"date" db:"date"`
	Rating      *int        `json:"rating,omitempty" db:"rating"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// ValidRating reports whether an optional rating is within bounds.
func ValidRating(rating *int) bool {
	return rating == nil || (*rating >= MinRating && *rating <= MaxRating)
}

type TripPhoto struct {
	ID        int64     `json:"id" db:"id"`
	TripID    int64     `json:"trip_id" db:"trip_id"`
	RouteID   *int64    `json:"route_id,omitempty" db:"route_id"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type TripLikeCount struct {
	TripID int64 `db:"trip_id"`
	Count  int   `db:"like_count"`
}
