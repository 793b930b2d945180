package repository

import (
	"context"

	"github.com/route-service/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// UpsertByIdentity creates or refreshes the user bound to a provider identity.
	UpsertByIdentity(ctx context.Context, profile *domain.VerifiedProfile) (*domain.User, error)

	UpdateProfile(ctx context.Context, id int64, name string, avatarURL *string) (*domain.User, error)
}

// RegionRepository - справочник регионов
type RegionRepository interface {
	ListRegions(ctx context.Context) ([]domain.Region, error)
	GetRegionByKey(ctx context.Context, key string) (*domain.Region, error)
	ListSubregions(ctx context.Context, regionKey string) ([]domain.Subregion, error)
}
