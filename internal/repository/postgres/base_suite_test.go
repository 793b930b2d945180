package postgres_test

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/route-service/internal/repository/postgres/testhelpers"
)

// dbSuite - общая подготовка БД для всех suite репозиториев
type dbSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	ctx    context.Context
}

// SetupSuite выполняется один раз перед всеми тестами
func (s *dbSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	s.Require().NoError(s.testDB.Migrate(), "Failed to apply migrations")
}

// SetupTest перезагружает фикстуры перед каждым тестом
func (s *dbSuite) SetupTest() {
	s.ctx = context.Background()

	s.Require().NoError(s.testDB.Cleanup(s.ctx), "Failed to cleanup test database")
	err := s.testDB.LoadFixtures(s.ctx, "testdata/fixtures", "routes.sql")
	s.Require().NoError(err, "Failed to load fixtures")
}

// TearDownSuite выполняется один раз после всех тестов
func (s *dbSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func int64Ptr(v int64) *int64 { return &v }
