package dto

import (
	"time"

	"github.com/route-service/internal/domain"
)

// RouteView - маршрут с агрегатами для отображения
type RouteView struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Description   *string             `json:"description,omitempty"`
	Coordinates   []domain.Coordinate `json:"coordinates"`
	OwnerID       *int64              `json:"owner_id,omitempty"`
	IsPublic      bool                `json:"is_public"`
	IsOwner       bool                `json:"is_owner"`
	Distance      *int                `json:"distance,omitempty"`
	Duration      *int                `json:"duration,omitempty"`
	DistanceText  *string             `json:"distance_text,omitempty"`
	DurationText  *string             `json:"duration_text,omitempty"`
	RegionID      *int64              `json:"region_id,omitempty"`
	SubregionID   *int64              `json:"subregion_id,omitempty"`
	Photos        []string            `json:"photos"`
	TripCount     int                 `json:"trip_count"`
	AverageRating *float64            `json:"average_rating"`
	IsSaved       *bool               `json:"is_saved,omitempty"` // nil для анонимного пользователя
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// TripView - поездка с фото и лайками
type TripView struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"user_id"`
	RouteID     *int64              `json:"route_id,omitempty"`
	Title       string              `json:"title"`
	Notes       *string             `json:"notes,omitempty"`
	Coordinates []domain.Coordinate `json:"coordinates"`
	Date        time.Time           `json:"date"`
	Rating      *int                `json:"rating,omitempty"`
	Photos      []string            `json:"photos"`
	LikeCount   int                 `json:"like_count"`
	IsLiked     *bool               `json:"is_liked,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ToggleResult - результат переключения связи
type ToggleResult struct {
	Active    bool `json:"active"`
	LikeCount *int `json:"like_count,omitempty"`
}

type CreateRouteResponse struct {
	ID       int64 `json:"id"`
	Distance *int  `json:"distance,omitempty"`
	Duration *int  `json:"duration,omitempty"`
}

type CreateTripResponse struct {
	ID        int64    `json:"id"`
	PhotoURLs []string `json:"photo_urls"`
}

type PhotoUploadResponse struct {
	URL string `json:"url"`
}

type UserResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	}
}

type SessionResponse struct {
	User      *UserResponse `json:"user"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
}
