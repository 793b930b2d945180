package dto

import "github.com/route-service/internal/domain"

// CoordinateInput - точка маршрута во входящем запросе
type CoordinateInput struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// ToCoordinates converts request points into the domain sequence, keeping order.
func ToCoordinates(in []CoordinateInput) domain.Coordinates {
	out := make(domain.Coordinates, len(in))
	for i, c := range in {
		out[i] = domain.Coordinate{Lat: c.Lat, Lng: c.Lng}
	}
	return out
}

// ListRoutesRequest - фильтры списка маршрутов
type ListRoutesRequest struct {
	Region    string `query:"region" validate:"omitempty,max=64"`
	Subregion string `query:"subregion" validate:"omitempty,max=64"`
	Query     string `query:"q" validate:"omitempty,max=200"`
}

// CreateRouteRequest - создание пользовательского маршрута
type CreateRouteRequest struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=2000"`
	Coordinates []CoordinateInput `json:"coordinates" validate:"required,min=2,max=200,dive"`
	IsPublic    bool              `json:"is_public"`
	RegionID    *int64            `json:"region_id,omitempty"`
	SubregionID *int64            `json:"subregion_id,omitempty"`
}

// UpdateRouteRequest - частичное редактирование маршрута владельцем
type UpdateRouteRequest struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=2000"`
	Coordinates []CoordinateInput `json:"coordinates,omitempty" validate:"omitempty,min=2,max=200,dive"`
}

type SetPrivacyRequest struct {
	IsPublic *bool `json:"is_public" validate:"required"`
}

// CreateTripRequest - отчет о поездке; Date принимает YYYY-MM-DD или RFC3339
type CreateTripRequest struct {
	RouteID     *int64            `json:"route_id,omitempty"`
	Title       string            `json:"title" validate:"required,max=200"`
	Notes       *string           `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Coordinates []CoordinateInput `json:"coordinates,omitempty" validate:"omitempty,max=200,dive"`
	Date        string            `json:"date" validate:"required"`
	Rating      *int              `json:"rating,omitempty"`
}

// FileUpload - загруженный файл
type FileUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// PhotoUpload - входные данные Photo Ingestion
type PhotoUpload struct {
	Parent     domain.PhotoParent
	ParentID   int64
	UploaderID int64
	File       FileUpload
}

// CreateSessionRequest - проверенный профиль от доверенного auth front-end
type CreateSessionRequest struct {
	Provider  string  `json:"provider" validate:"required,max=32"`
	Subject   string  `json:"subject" validate:"required,max=255"`
	Name      string  `json:"name" validate:"required,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=100"`
}
