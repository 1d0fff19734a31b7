package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/repository/postgres/testhelpers"
)

// AreaRepositoryTestSuite tests all methods of AreaRepository
type AreaRepositoryTestSuite struct {
	suite.Suite
	testDB       *testhelpers.TestDB
	repo         repository.AreaRepository
	ctx          context.Context
	unassignedID int64
}

// SetupSuite runs once before all tests in the suite
func (s *AreaRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := s.testDB.Cleanup(context.Background())
	s.Require().NoError(err, "Failed to cleanup test database")

	err = testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")

	err = testhelpers.LoadFixtures(s.testDB.DB.DB, "testdata/fixtures", []string{"areas.sql"})
	s.Require().NoError(err, "Failed to load fixtures")

	s.unassignedID, err = testhelpers.GetAreaIDByName(s.testDB.DB.DB, testhelpers.UnassignedAreaName)
	s.Require().NoError(err)

	s.repo = testhelpers.NewAreaRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite runs once after all tests in the suite
func (s *AreaRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest runs before each test
func (s *AreaRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

// ============================================================================
// Lookup Tests
// ============================================================================

func (s *AreaRepositoryTestSuite) TestGetByName_Success() {
	area, err := s.repo.GetByName(s.ctx, "역삼동")

	s.Require().NoError(err)
	s.Equal("역삼동", area.Name)
	s.InDelta(37.5006, area.Center.Lat, 1e-6)
	s.InDelta(127.0366, area.Center.Lon, 1e-6)
	s.Require().NotNil(area.LeaderID)
	s.Equal(int64(900), *area.LeaderID)
}

func (s *AreaRepositoryTestSuite) TestGetByName_NotFound() {
	_, err := s.repo.GetByName(s.ctx, "없는동")
	s.ErrorIs(err, errors.ErrAreaNotFound)
}

func (s *AreaRepositoryTestSuite) TestGetByID_Unassigned() {
	area, err := s.repo.GetByID(s.ctx, s.unassignedID)

	s.Require().NoError(err)
	s.Equal(testhelpers.UnassignedAreaName, area.Name)
	s.Nil(area.LeaderID)
}

func (s *AreaRepositoryTestSuite) TestList_OrderedByName() {
	areas, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().GreaterOrEqual(len(areas), 5)

	for i := 1; i < len(areas); i++ {
		s.LessOrEqual(areas[i-1].Name, areas[i].Name)
	}
}

// ============================================================================
// Matching Tests
// ============================================================================

func (s *AreaRepositoryTestSuite) TestFindByNameFold_CaseInsensitive() {
	area, err := s.repo.FindByNameFold(s.ctx, "SEOCHO-DONG", s.unassignedID)

	s.Require().NoError(err)
	s.Equal("Seocho-dong", area.Name)
}

func (s *AreaRepositoryTestSuite) TestFindByNameFold_ExcludesUnassigned() {
	_, err := s.repo.FindByNameFold(s.ctx, testhelpers.UnassignedAreaName, s.unassignedID)
	s.ErrorIs(err, errors.ErrAreaNotFound)
}

func (s *AreaRepositoryTestSuite) TestFindContainedIn_PicksFirstByName() {
	// "동" и "역삼동" оба входят в строку; первый по имени - "동"
	area, err := s.repo.FindContainedIn(s.ctx, "서울특별시 강남구 역삼동", s.unassignedID)

	s.Require().NoError(err)
	s.Equal("동", area.Name)
}

func (s *AreaRepositoryTestSuite) TestFindContainedIn_NoMatch() {
	_, err := s.repo.FindContainedIn(s.ctx, "Gangnam-gu", s.unassignedID)
	s.ErrorIs(err, errors.ErrAreaNotFound)
}

func (s *AreaRepositoryTestSuite) TestFindNearest() {
	area, err := s.repo.FindNearest(s.ctx, domain.Coordinate{Lat: 37.5140, Lon: 127.0560}, s.unassignedID)

	s.Require().NoError(err)
	s.Equal("삼성동", area.Name)
}

// TestAreaRepositorySuite runs the test suite
func TestAreaRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(AreaRepositoryTestSuite))
}
