package repository

import (
	"context"

	"github.com/route-service/internal/domain"
)

// ObjectStorage - хранилище бинарных объектов (фотографий)
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (*domain.Blob, error)
	Delete(ctx context.Context, key string) error
}

// DirectionsRepository - внешний провайдер маршрутов
type DirectionsRepository interface {
	GetDrivingRoute(ctx context.Context, origin, destination domain.Coordinate, waypoints []domain.Coordinate) (*domain.DirectionsResponse, error)
}
