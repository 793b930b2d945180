package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
	"github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/repository/postgres/testhelpers"
)

// RouteRepositoryTestSuite тестирует RouteRepository, PhotoRepository и статистику поездок
type RouteRepositoryTestSuite struct {
	dbSuite
	routes repository.RouteRepository
	photos repository.PhotoRepository
	trips  repository.TripRepository
}

func (s *RouteRepositoryTestSuite) SetupSuite() {
	s.dbSuite.SetupSuite()
	s.routes = testhelpers.NewRouteRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.photos = testhelpers.NewPhotoRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.trips = testhelpers.NewTripRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func routeNames(routes []*domain.Route) []string {
	names := make([]string, 0, len(routes))
	for _, r := range routes {
		names = append(names, r.Name)
	}
	return names
}

// ============================================================================
// Visibility
// ============================================================================

func (s *RouteRepositoryTestSuite) TestListVisible_Anonymous() {
	routes, err := s.routes.ListVisible(s.ctx, domain.RouteFilter{}, nil)

	s.NoError(err)
	s.Equal([]string{"Mountain Pass", "Coastal Drive"}, routeNames(routes))
}

func (s *RouteRepositoryTestSuite) TestListVisible_Owner() {
	routes, err := s.routes.ListVisible(s.ctx, domain.RouteFilter{}, int64Ptr(1))

	s.NoError(err)
	s.Equal([]string{"Secret Lake", "Mountain Pass", "Coastal Drive"}, routeNames(routes))
}

func (s *RouteRepositoryTestSuite) TestListVisible_Stranger() {
	routes, err := s.routes.ListVisible(s.ctx, domain.RouteFilter{}, int64Ptr(2))

	s.NoError(err)
	s.NotContains(routeNames(routes), "Secret Lake")
}

func (s *RouteRepositoryTestSuite) TestListVisible_RegionAndQuery() {
	routes, err := s.routes.ListVisible(s.ctx, domain.RouteFilter{RegionKey: "chubu"}, nil)
	s.NoError(err)
	s.Equal([]string{"Mountain Pass"}, routeNames(routes))

	routes, err = s.routes.ListVisible(s.ctx, domain.RouteFilter{Query: "seaSIDE"}, nil)
	s.NoError(err)
	s.Equal([]string{"Coastal Drive"}, routeNames(routes))

	routes, err = s.routes.ListVisible(s.ctx, domain.RouteFilter{Query: "100%"}, nil)
	s.NoError(err)
	s.Empty(routes)
}

// ============================================================================
// Writes
// ============================================================================

func (s *RouteRepositoryTestSuite) TestCreateAndGet() {
	route := &domain.Route{
		Name:        "New road",
		Coordinates: domain.Coordinates{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}},
		OwnerID:     int64Ptr(2),
	}

	s.Require().NoError(s.routes.Create(s.ctx, route))
	s.NotZero(route.ID)

	got, err := s.routes.GetByID(s.ctx, route.ID)
	s.NoError(err)
	s.Equal(route.Coordinates, got.Coordinates)
	s.False(got.IsPublic)
	s.Nil(got.Distance)
}

func (s *RouteRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.routes.GetByID(s.ctx, 9999)
	s.ErrorIs(err, errors.ErrRouteNotFound)
}

func (s *RouteRepositoryTestSuite) TestListByOwner_IncludesPrivate() {
	routes, err := s.routes.ListByOwner(s.ctx, 1)

	s.NoError(err)
	s.Equal([]string{"Secret Lake", "Mountain Pass"}, routeNames(routes))

	routes, err = s.routes.ListByOwner(s.ctx, 2)
	s.NoError(err)
	s.Empty(routes)
}

func (s *RouteRepositoryTestSuite) TestListSavedBy_HidesInvisible() {
	// пользователь 2 сохранил маршрут 3, пока тот был публичным
	_, err := s.testDB.DB.ExecContext(s.ctx, `
		INSERT INTO saved_routes (user_id, route_id, created_at) VALUES
			(2, 1, '2024-04-01T00:00:00Z'),
			(2, 2, '2024-04-02T00:00:00Z'),
			(2, 3, '2024-04-03T00:00:00Z')`)
	s.Require().NoError(err)

	routes, err := s.routes.ListSavedBy(s.ctx, 2)
	s.NoError(err)
	s.Equal([]string{"Mountain Pass", "Coastal Drive"}, routeNames(routes))

	s.Require().NoError(s.routes.SetPrivacy(s.ctx, 3, true))
	routes, err = s.routes.ListSavedBy(s.ctx, 2)
	s.NoError(err)
	s.Equal([]string{"Secret Lake", "Mountain Pass", "Coastal Drive"}, routeNames(routes))
}

func (s *RouteRepositoryTestSuite) TestSetPrivacyAndMetrics() {
	s.NoError(s.routes.SetPrivacy(s.ctx, 3, true))
	s.NoError(s.routes.UpdateMetrics(s.ctx, 3, &domain.RouteMetrics{DistanceMeters: 1200, DurationSeconds: 300}))

	got, err := s.routes.GetByID(s.ctx, 3)
	s.NoError(err)
	s.True(got.IsPublic)
	s.Equal(1200, *got.Distance)
	s.Equal(300, *got.Duration)

	s.NoError(s.routes.UpdateMetrics(s.ctx, 3, nil))
	got, err = s.routes.GetByID(s.ctx, 3)
	s.NoError(err)
	s.Nil(got.Distance)
	s.Nil(got.Duration)

	s.ErrorIs(s.routes.SetPrivacy(s.ctx, 9999, true), errors.ErrRouteNotFound)
}

func (s *RouteRepositoryTestSuite) TestDelete_CascadesPhotosAndDetachesTrips() {
	s.NoError(s.routes.Delete(s.ctx, 2))

	photos, err := s.photos.PhotosByRouteIDs(s.ctx, []int64{2})
	s.NoError(err)
	s.Empty(photos)

	trip, err := s.trips.GetByID(s.ctx, 1)
	s.NoError(err)
	s.Nil(trip.RouteID)
}

// ============================================================================
// Aggregation reads
// ============================================================================

func (s *RouteRepositoryTestSuite) TestPhotoOrdering() {
	direct, err := s.photos.PhotosByRouteIDs(s.ctx, []int64{2})
	s.NoError(err)
	s.Require().Len(direct, 1)
	s.Equal("/photos/routes/2/p1.jpg", direct[0].URL)

	tripPhotos, err := s.photos.TripPhotosByRouteIDs(s.ctx, []int64{2})
	s.NoError(err)

	var urls []string
	for _, p := range tripPhotos {
		urls = append(urls, p.URL)
		s.Equal(int64(2), *p.RouteID)
	}
	s.Equal([]string{"/photos/trips/1/p2.jpg", "/photos/trips/2/p3.jpg", "/photos/trips/2/p4.jpg"}, urls)
}

// рейтинги поездок маршрута 2: 5, NULL, 3
func (s *RouteRepositoryTestSuite) TestStatsByRouteIDs_IgnoresUnrated() {
	stats, err := s.trips.StatsByRouteIDs(s.ctx, []int64{1, 2})

	s.NoError(err)
	s.Require().Len(stats, 1)
	s.Equal(int64(2), stats[0].RouteID)
	s.Equal(3, stats[0].TripCount)
	s.Require().NotNil(stats[0].AverageRating)
	s.InDelta(4.0, *stats[0].AverageRating, 0.0001)
}

func (s *RouteRepositoryTestSuite) TestGetByIDs_SkipsMissing() {
	routes, err := s.routes.GetByIDs(s.ctx, []int64{3, 1, 9999})

	s.NoError(err)
	s.ElementsMatch([]string{"Secret Lake", "Coastal Drive"}, routeNames(routes))

	routes, err = s.routes.GetByIDs(s.ctx, nil)
	s.NoError(err)
	s.Empty(routes)
}

func (s *RouteRepositoryTestSuite) TestEmptyBatches() {
	photos, err := s.photos.PhotosByRouteIDs(s.ctx, nil)
	s.NoError(err)
	s.Empty(photos)

	stats, err := s.trips.StatsByRouteIDs(s.ctx, []int64{})
	s.NoError(err)
	s.Empty(stats)
}

// TestRouteRepositoryTestSuite запускает test suite
func TestRouteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RouteRepositoryTestSuite))
}
