package domain

// PhotoParent - тип родительской сущности для загружаемой фотографии
type PhotoParent string

const (
	PhotoParentRoute PhotoParent = "route"
	PhotoParentTrip  PhotoParent = "trip"
	PhotoParentUser  PhotoParent = "user"
)

// KeyPrefix returns the object storage prefix for the parent kind.
func (p PhotoParent) KeyPrefix() string {
	switch p {
	case PhotoParentRoute:
		return "routes"
	case PhotoParentTrip:
		return "trips"
	default:
		return "users"
	}
}

// Blob - объект из хранилища
type Blob struct {
	Key         string
	ContentType string
	Data        []byte
}
