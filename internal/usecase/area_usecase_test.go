package usecase_test

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/usecase"
	"github.com/grievance-service/internal/usecase/dto"
)

func newAreaUseCase(t *testing.T) (*usecase.AreaUseCase, *MockAreaRepository, *MockCacheRepository, *MockGeocoderRepository) {
	repo := new(MockAreaRepository)
	cache := new(MockCacheRepository)
	geocoder := new(MockGeocoderRepository)
	matcher := newMatcher(t, repo)
	resolver := usecase.NewLocationResolver(cache, geocoder, testGeocodeTTL, time.Second, zap.NewNop())
	return usecase.NewAreaUseCase(repo, matcher, resolver, zap.NewNop()), repo, cache, geocoder
}

func TestAreaUseCase_List(t *testing.T) {
	uc, repo, _, _ := newAreaUseCase(t)
	repo.On("List", mock.Anything).Return([]*domain.Area{samseongArea, yeoksamArea}, nil)

	resp, err := uc.List(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestAreaUseCase_Match(t *testing.T) {
	uc, repo, _, _ := newAreaUseCase(t)
	repo.On("FindByNameFold", mock.Anything, "역삼동", int64(0)).Return(yeoksamArea, nil)

	resp, err := uc.Match(t.Context(), dto.MatchAreaRequest{
		PlaceName: "역삼동",
		Latitude:  ptrFloat64(gangnam.Lat),
		Longitude: ptrFloat64(gangnam.Lon),
	})

	require.NoError(t, err)
	assert.Equal(t, "exact", resp.Strategy)
	assert.Equal(t, yeoksamArea.ID, resp.Area.ID)

	_, err = uc.Match(t.Context(), dto.MatchAreaRequest{PlaceName: "역삼동"})
	assert.True(t, stderrors.Is(err, errors.ErrInvalidRequest))
}

func TestAreaUseCase_Resolve(t *testing.T) {
	uc, _, cache, geocoder := newAreaUseCase(t)
	cache.On("GetPlaceName", mock.Anything, gangnam).Return("", false, nil)
	geocoder.On("ReverseGeocode", mock.Anything, gangnam).Return("", errors.ErrUpstreamUnavailable)

	resp, err := uc.Resolve(t.Context(), dto.ResolveLocationRequest{
		Latitude:  ptrFloat64(37.50131),
		Longitude: ptrFloat64(127.03979),
	})

	require.NoError(t, err)
	assert.Equal(t, "fallback", resp.Source)
	assert.Equal(t, "37.5013, 127.0398", resp.PlaceName)
	assert.Equal(t, gangnam.Lat, resp.Latitude)
}
