package usecase_test

import (
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/config"
	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/policy"
	"github.com/grievance-service/internal/usecase"
	"github.com/grievance-service/internal/usecase/dto"
)

type GrievanceUseCaseTestSuite struct {
	suite.Suite
	areas      *MockAreaRepository
	grievances *MockGrievanceRepository
	cache      *MockCacheRepository
	geocoder   *MockGeocoderRepository
	uc         *usecase.GrievanceUseCase
}

func (s *GrievanceUseCaseTestSuite) SetupTest() {
	s.areas = new(MockAreaRepository)
	s.grievances = new(MockGrievanceRepository)
	s.cache = new(MockCacheRepository)
	s.geocoder = new(MockGeocoderRepository)

	logger := zap.NewNop()
	s.areas.On("GetByName", mock.Anything, unassignedName).Return(unassignedArea, nil)
	matcher, err := usecase.NewAreaMatcher(s.T().Context(), s.areas, unassignedName, logger)
	s.Require().NoError(err)

	resolver := usecase.NewLocationResolver(s.cache, s.geocoder, testGeocodeTTL, time.Second, logger)
	proximity := usecase.NewProximityIndex(s.grievances, logger)

	s.uc = usecase.NewGrievanceUseCase(s.grievances, resolver, matcher, proximity, config.GrievanceConfig{
		NearbyDefaultRadiusKm: 5,
		NearbyMaxResults:      2,
		FeedPageSize:          20,
		FeedMaxPageSize:       100,
	}, logger)
}

func TestGrievanceUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(GrievanceUseCaseTestSuite))
}

func citizenViewer(id int64) domain.Viewer {
	return domain.Viewer{UserID: id, Authenticated: true, Role: domain.RoleCitizen}
}

func privateGrievanceOf(owner int64) *domain.Grievance {
	return &domain.Grievance{
		ID:           uuid.New(),
		UserID:       ptrInt64(owner),
		Title:        "주차 문제",
		Visibility:   domain.VisibilityPrivate,
		Status:       domain.StatusPending,
		AreaID:       ptrInt64(yeoksamArea.ID),
		AreaLeaderID: yeoksamArea.LeaderID,
		HasSecret:    true,
	}
}

func (s *GrievanceUseCaseTestSuite) expectResolved(place string, area *domain.Area) {
	s.cache.On("GetPlaceName", mock.Anything, gangnam).Return(place, true, nil)
	s.areas.On("FindByNameFold", mock.Anything, place, int64(0)).Return(area, nil)
}

func (s *GrievanceUseCaseTestSuite) TestCreate_AssignsLocationAndArea() {
	s.expectResolved("역삼동", yeoksamArea)
	s.grievances.On("Create", mock.Anything, mock.MatchedBy(func(g *domain.Grievance) bool {
		return g.Location == "역삼동" &&
			*g.AreaID == yeoksamArea.ID &&
			*g.AreaLeaderID == 900 &&
			*g.UserID == 7 &&
			g.Visibility == domain.VisibilityPublic &&
			g.Category == domain.CategoryEtc &&
			g.Status == domain.StatusPending
	}), (*domain.Secret)(nil)).Return(nil)

	resp, err := s.uc.Create(s.T().Context(), citizenViewer(7), dto.CreateGrievanceRequest{
		Title:     "가로등 고장",
		Content:   "불이 꺼져 있습니다",
		Latitude:  ptrFloat64(gangnam.Lat),
		Longitude: ptrFloat64(gangnam.Lon),
	})

	s.Require().NoError(err)
	s.Equal("역삼동", *resp.AreaName)
	// район жалобы - копия, а не ссылка на район сопоставителя
	s.NotSame(yeoksamArea.LeaderID, resp.AreaLeaderID)
	s.grievances.AssertExpectations(s.T())
}

func (s *GrievanceUseCaseTestSuite) TestCreate_AnonymousFallsBackToUnassigned() {
	s.cache.On("GetPlaceName", mock.Anything, gangnam).Return("", false, nil)
	s.geocoder.On("ReverseGeocode", mock.Anything, gangnam).Return("", errors.ErrUpstreamUnavailable)
	s.areas.On("FindByNameFold", mock.Anything, "37.5013, 127.0398", int64(0)).Return(nil, errors.ErrAreaNotFound)
	s.areas.On("FindContainedIn", mock.Anything, "37.5013, 127.0398", unassignedArea.ID).Return(nil, errors.ErrAreaNotFound)
	s.areas.On("FindNearest", mock.Anything, gangnam, unassignedArea.ID).Return(nil, errors.ErrAreaNotFound)
	s.grievances.On("Create", mock.Anything, mock.MatchedBy(func(g *domain.Grievance) bool {
		return g.UserID == nil && *g.AreaID == unassignedArea.ID && g.Location == "37.5013, 127.0398"
	}), (*domain.Secret)(nil)).Return(nil)

	_, err := s.uc.Create(s.T().Context(), domain.Anonymous(), dto.CreateGrievanceRequest{
		Title:     "소음",
		Content:   "공사 소음",
		Latitude:  ptrFloat64(gangnam.Lat),
		Longitude: ptrFloat64(gangnam.Lon),
	})

	s.Require().NoError(err)
	s.grievances.AssertExpectations(s.T())
}

func (s *GrievanceUseCaseTestSuite) TestCreate_PrivateWithPasswordStoresHash() {
	s.expectResolved("역삼동", yeoksamArea)
	var stored *domain.Secret
	s.grievances.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(2).(*domain.Secret) }).
		Return(nil)

	resp, err := s.uc.Create(s.T().Context(), domain.Anonymous(), dto.CreateGrievanceRequest{
		Title:      "비공개 민원",
		Content:    "내용",
		Latitude:   ptrFloat64(gangnam.Lat),
		Longitude:  ptrFloat64(gangnam.Lon),
		Visibility: "private",
		Password:   ptrString("s3cret"),
	})

	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(resp.ID, stored.GrievanceID)
	s.NotEqual("s3cret", stored.PasswordHash)
	s.True(policy.VerifyPassword(stored, "s3cret"))
}

func (s *GrievanceUseCaseTestSuite) TestCreate_PasswordOnPublicRejected() {
	_, err := s.uc.Create(s.T().Context(), citizenViewer(7), dto.CreateGrievanceRequest{
		Title:     "공개 민원",
		Content:   "내용",
		Latitude:  ptrFloat64(gangnam.Lat),
		Longitude: ptrFloat64(gangnam.Lon),
		Password:  ptrString("s3cret"),
	})

	s.True(stderrors.Is(err, errors.ErrPasswordNotApplicable))
	s.grievances.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (s *GrievanceUseCaseTestSuite) TestCreate_InvalidRequest() {
	_, err := s.uc.Create(s.T().Context(), citizenViewer(7), dto.CreateGrievanceRequest{
		Title:     "좌표 없음",
		Content:   "내용",
		Latitude:  ptrFloat64(95),
		Longitude: ptrFloat64(gangnam.Lon),
	})

	s.True(stderrors.Is(err, errors.ErrInvalidRequest))
}

func (s *GrievanceUseCaseTestSuite) TestGet_PrivateHiddenFromStranger() {
	g := privateGrievanceOf(1)
	s.grievances.On("GetByID", mock.Anything, g.ID).Return(g, nil)

	_, err := s.uc.Get(s.T().Context(), citizenViewer(42), g.ID, nil)

	s.True(stderrors.Is(err, errors.ErrNotAccessible))
}

func (s *GrievanceUseCaseTestSuite) TestGet_LeaderSeesPrivate() {
	g := privateGrievanceOf(1)
	s.grievances.On("GetByID", mock.Anything, g.ID).Return(g, nil)
	s.grievances.On("IsLiked", mock.Anything, g.ID, int64(900)).Return(true, nil)

	resp, err := s.uc.Get(s.T().Context(), citizenViewer(900), g.ID, nil)

	s.Require().NoError(err)
	s.True(resp.IsLiked)
}

func (s *GrievanceUseCaseTestSuite) TestGet_Password() {
	hash, err := policy.HashPassword("s3cret")
	s.Require().NoError(err)
	g := privateGrievanceOf(1)
	s.grievances.On("GetByID", mock.Anything, g.ID).Return(g, nil)
	s.grievances.On("GetSecret", mock.Anything, g.ID).Return(&domain.Secret{GrievanceID: g.ID, PasswordHash: hash}, nil)
	s.grievances.On("IsLiked", mock.Anything, g.ID, mock.Anything).Return(false, nil)

	resp, err := s.uc.Get(s.T().Context(), domain.Anonymous(), g.ID, ptrString("s3cret"))
	s.Require().NoError(err)
	s.Equal(g.ID, resp.ID)

	_, err = s.uc.Get(s.T().Context(), domain.Anonymous(), g.ID, ptrString("wrong"))
	s.True(stderrors.Is(err, errors.ErrNotAccessible))

	// автор видит свою жалобу и с неверным паролем
	_, err = s.uc.Get(s.T().Context(), citizenViewer(1), g.ID, ptrString("wrong"))
	s.NoError(err)
}

func (s *GrievanceUseCaseTestSuite) TestGet_PasswordNotApplicable() {
	public := &domain.Grievance{ID: uuid.New(), Visibility: domain.VisibilityPublic}
	s.grievances.On("GetByID", mock.Anything, public.ID).Return(public, nil)

	_, err := s.uc.Get(s.T().Context(), domain.Anonymous(), public.ID, ptrString("s3cret"))
	s.True(stderrors.Is(err, errors.ErrPasswordNotApplicable))

	noSecret := privateGrievanceOf(1)
	noSecret.HasSecret = false
	s.grievances.On("GetByID", mock.Anything, noSecret.ID).Return(noSecret, nil)
	s.grievances.On("GetSecret", mock.Anything, noSecret.ID).Return(nil, nil)

	_, err = s.uc.Get(s.T().Context(), domain.Anonymous(), noSecret.ID, ptrString("s3cret"))
	s.True(stderrors.Is(err, errors.ErrPasswordNotApplicable))
}

func (s *GrievanceUseCaseTestSuite) TestGet_MalformedPassword() {
	id := uuid.New()

	_, err := s.uc.Get(s.T().Context(), domain.Anonymous(), id, ptrString(""))
	assertSentinel(s.T(), errors.ErrInvalidPassword, err)

	long := make([]byte, policy.MaxPasswordLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = s.uc.Get(s.T().Context(), domain.Anonymous(), id, ptrString(string(long)))
	assertSentinel(s.T(), errors.ErrInvalidPassword, err)

	s.grievances.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
}

func (s *GrievanceUseCaseTestSuite) TestGet_NotFound() {
	id := uuid.New()
	s.grievances.On("GetByID", mock.Anything, id).Return(nil, errors.ErrGrievanceNotFound)

	_, err := s.uc.Get(s.T().Context(), domain.Anonymous(), id, nil)
	s.True(stderrors.Is(err, errors.ErrGrievanceNotFound))
}

func (s *GrievanceUseCaseTestSuite) TestList_Pagination() {
	items := []*domain.Grievance{{ID: uuid.New()}}
	s.grievances.On("List", mock.Anything, policy.FilterFor(domain.Anonymous()), domain.GrievanceListFilter{
		Ordering: domain.DefaultFeedOrdering,
		Limit:    100,
		Offset:   100,
	}).Return(items, 101, nil)

	resp, err := s.uc.List(s.T().Context(), domain.Anonymous(), dto.ListGrievancesRequest{Page: 2, PageSize: 500})

	s.Require().NoError(err)
	s.Equal(100, resp.PageSize)
	s.Equal(101, resp.Total)
	s.False(resp.HasNext)
}

func (s *GrievanceUseCaseTestSuite) TestList_SearchLocationOrdering() {
	s.grievances.On("List", mock.Anything, policy.FilterFor(domain.Anonymous()), mock.MatchedBy(func(f domain.GrievanceListFilter) bool {
		return f.Search != nil && *f.Search == "가로등" &&
			f.Location != nil && *f.Location == "역삼동" &&
			f.Ordering == domain.OrderByLikeCountDesc
	})).Return([]*domain.Grievance{}, 0, nil)

	_, err := s.uc.List(s.T().Context(), domain.Anonymous(), dto.ListGrievancesRequest{
		Search:   "  가로등 ",
		Location: "역삼동",
		Ordering: "-like_count",
	})
	s.Require().NoError(err)

	s.grievances.On("List", mock.Anything, policy.FilterFor(domain.Anonymous()), mock.MatchedBy(func(f domain.GrievanceListFilter) bool {
		return f.Search == nil && f.Location == nil && f.Ordering == domain.DefaultFeedOrdering
	})).Return([]*domain.Grievance{}, 0, nil).Once()

	_, err = s.uc.List(s.T().Context(), domain.Anonymous(), dto.ListGrievancesRequest{Search: "   "})
	s.Require().NoError(err)
}

func (s *GrievanceUseCaseTestSuite) TestList_RejectsUnknownOrdering() {
	_, err := s.uc.List(s.T().Context(), domain.Anonymous(), dto.ListGrievancesRequest{Ordering: "password_hash"})

	assertSentinel(s.T(), errors.ErrInvalidRequest, err)
	s.grievances.AssertNotCalled(s.T(), "List", mock.Anything, mock.Anything, mock.Anything)
}

func (s *GrievanceUseCaseTestSuite) TestList_PageOutOfRange() {
	_, err := s.uc.List(s.T().Context(), domain.Anonymous(), dto.ListGrievancesRequest{Page: dto.MaxFeedPage + 1})
	assertSentinel(s.T(), errors.ErrInvalidRequest, err)

	_, err = s.uc.List(s.T().Context(), domain.Anonymous(), dto.ListGrievancesRequest{Page: math.MaxInt})
	assertSentinel(s.T(), errors.ErrInvalidRequest, err)

	s.grievances.AssertNotCalled(s.T(), "List", mock.Anything, mock.Anything, mock.Anything)
}

func (s *GrievanceUseCaseTestSuite) TestList_Mine() {
	viewer := citizenViewer(7)
	s.grievances.On("List", mock.Anything, policy.FilterFor(viewer), mock.MatchedBy(func(f domain.GrievanceListFilter) bool {
		return f.OwnerID != nil && *f.OwnerID == 7 && f.Limit == 20 && f.Offset == 0
	})).Return([]*domain.Grievance{}, 0, nil)

	_, err := s.uc.List(s.T().Context(), viewer, dto.ListGrievancesRequest{Mine: true})
	s.NoError(err)

	_, err = s.uc.List(s.T().Context(), domain.Anonymous(), dto.ListGrievancesRequest{Mine: true})
	s.True(stderrors.Is(err, errors.ErrUnauthenticated))
}

func (s *GrievanceUseCaseTestSuite) TestNearby_DefaultRadiusAndTruncation() {
	filter := policy.FilterFor(domain.Anonymous())
	s.grievances.On("Nearby", mock.Anything, gangnam, 5000.0, filter).
		Return(seqOf(nearbyAt(10), nearbyAt(20), nearbyAt(30)))

	resp, err := s.uc.Nearby(s.T().Context(), domain.Anonymous(), dto.NearbyRequest{
		Lat: ptrFloat64(gangnam.Lat),
		Lng: ptrFloat64(gangnam.Lon),
	})

	s.Require().NoError(err)
	s.Equal(5.0, resp.RadiusKm)
	s.Equal(2, resp.Count)
	s.True(resp.Truncated)
}

func (s *GrievanceUseCaseTestSuite) TestNearby_Invalid() {
	_, err := s.uc.Nearby(s.T().Context(), domain.Anonymous(), dto.NearbyRequest{Lat: ptrFloat64(1)})
	assertSentinel(s.T(), errors.ErrInvalidCoordinates, err)

	_, err = s.uc.Nearby(s.T().Context(), domain.Anonymous(), dto.NearbyRequest{
		Lat: ptrFloat64(gangnam.Lat), Lng: ptrFloat64(gangnam.Lon), RadiusKm: -1,
	})
	assertSentinel(s.T(), errors.ErrInvalidRadius, err)
}

func (s *GrievanceUseCaseTestSuite) TestChangeStatus_OwnerDenied() {
	g := privateGrievanceOf(1)
	s.grievances.On("GetByID", mock.Anything, g.ID).Return(g, nil)

	_, err := s.uc.ChangeStatus(s.T().Context(), citizenViewer(1), g.ID, dto.ChangeStatusRequest{Status: "resolved"})

	s.True(stderrors.Is(err, errors.ErrPermissionDenied))
	s.grievances.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *GrievanceUseCaseTestSuite) TestChangeStatus_LeaderResolves() {
	g := privateGrievanceOf(1)
	s.grievances.On("GetByID", mock.Anything, g.ID).Return(g, nil)
	s.grievances.On("UpdateStatus", mock.Anything, g.ID, domain.StatusResolved, mock.MatchedBy(func(t *time.Time) bool {
		return t != nil
	})).Return(nil)

	updated, err := s.uc.ChangeStatus(s.T().Context(), citizenViewer(900), g.ID, dto.ChangeStatusRequest{Status: "resolved"})

	s.Require().NoError(err)
	s.Equal(domain.StatusResolved, updated.Status)
	s.NotNil(updated.CompletedAt)
}

func (s *GrievanceUseCaseTestSuite) TestChangeStatus_ReopenClearsCompletion() {
	completed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := privateGrievanceOf(1)
	g.Status = domain.StatusResolved
	g.CompletedAt = &completed
	s.grievances.On("GetByID", mock.Anything, g.ID).Return(g, nil)
	s.grievances.On("UpdateStatus", mock.Anything, g.ID, domain.StatusInProgress, (*time.Time)(nil)).Return(nil)

	updated, err := s.uc.ChangeStatus(s.T().Context(), citizenViewer(900), g.ID, dto.ChangeStatusRequest{Status: "in_progress"})

	s.Require().NoError(err)
	s.Nil(updated.CompletedAt)
	s.grievances.AssertExpectations(s.T())
}

func (s *GrievanceUseCaseTestSuite) TestChangeStatus_Anonymous() {
	_, err := s.uc.ChangeStatus(s.T().Context(), domain.Anonymous(), uuid.New(), dto.ChangeStatusRequest{Status: "resolved"})
	s.True(stderrors.Is(err, errors.ErrUnauthenticated))
}

func (s *GrievanceUseCaseTestSuite) TestUpdate() {
	g := &domain.Grievance{ID: uuid.New(), UserID: ptrInt64(7), Title: "old", Visibility: domain.VisibilityPublic}
	s.grievances.On("GetByID", mock.Anything, g.ID).Return(g, nil)
	s.grievances.On("UpdateContent", mock.Anything, mock.MatchedBy(func(u *domain.Grievance) bool {
		return u.Title == "new"
	})).Return(nil)

	updated, err := s.uc.Update(s.T().Context(), citizenViewer(7), g.ID, dto.UpdateGrievanceRequest{Title: ptrString("new")})
	s.Require().NoError(err)
	s.Equal("new", updated.Title)

	_, err = s.uc.Update(s.T().Context(), citizenViewer(8), g.ID, dto.UpdateGrievanceRequest{Title: ptrString("x")})
	s.True(stderrors.Is(err, errors.ErrPermissionDenied))
}

func (s *GrievanceUseCaseTestSuite) TestDelete_HiddenGrievance() {
	g := privateGrievanceOf(1)
	s.grievances.On("GetByID", mock.Anything, g.ID).Return(g, nil)

	err := s.uc.Delete(s.T().Context(), citizenViewer(42), g.ID)

	s.True(stderrors.Is(err, errors.ErrNotAccessible))
	s.grievances.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func (s *GrievanceUseCaseTestSuite) TestToggleLike() {
	g := &domain.Grievance{ID: uuid.New(), Visibility: domain.VisibilityPublic}
	s.grievances.On("GetByID", mock.Anything, g.ID).Return(g, nil)
	s.grievances.On("ToggleLike", mock.Anything, g.ID, int64(7)).Return(true, 3, nil)

	resp, err := s.uc.ToggleLike(s.T().Context(), citizenViewer(7), g.ID)
	s.Require().NoError(err)
	s.Equal(&dto.LikeResponse{IsLiked: true, LikeCount: 3}, resp)

	_, err = s.uc.ToggleLike(s.T().Context(), domain.Anonymous(), g.ID)
	s.True(stderrors.Is(err, errors.ErrUnauthenticated))
}

func TestGrievanceUseCase_OfficialSeesEverything(t *testing.T) {
	admin := domain.Viewer{UserID: 5, Authenticated: true, Role: domain.RoleAdmin, Verified: true}
	g := privateGrievanceOf(1)

	d := policy.Decide(g, admin)
	require.True(t, d.Allowed)
	assert.True(t, policy.FilterFor(admin).Unrestricted())
}
