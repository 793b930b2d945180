package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewRouteRepositoryForTest creates a route repository with test database and logger
func NewRouteRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.RouteRepository {
	return postgres.NewRouteRepository(NewDBForTest(db, logger))
}

// NewPhotoRepositoryForTest creates a photo repository with test database and logger
func NewPhotoRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PhotoRepository {
	return postgres.NewPhotoRepository(NewDBForTest(db, logger))
}

// NewTripRepositoryForTest creates a trip repository with test database and logger
func NewTripRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.TripRepository {
	return postgres.NewTripRepository(NewDBForTest(db, logger))
}

// NewRelationRepositoryForTest creates a relation repository with test database and logger
func NewRelationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.RelationRepository {
	return postgres.NewRelationRepository(NewDBForTest(db, logger))
}

// NewUserRepositoryForTest creates a user repository with test database and logger
func NewUserRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.UserRepository {
	return postgres.NewUserRepository(NewDBForTest(db, logger))
}

// NewRegionRepositoryForTest creates a region repository with test database and logger
func NewRegionRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.RegionRepository {
	return postgres.NewRegionRepository(NewDBForTest(db, logger))
}
