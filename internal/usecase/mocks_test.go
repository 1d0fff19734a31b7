package usecase_test

import (
	"context"
	stderrors "errors"
	"iter"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/policy"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetPlaceName(ctx context.Context, c domain.Coordinate) (string, bool, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCacheRepository) SetPlaceName(ctx context.Context, c domain.Coordinate, name string, ttl time.Duration) error {
	args := m.Called(ctx, c, name, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockGeocoderRepository is a mock of GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) ReverseGeocode(ctx context.Context, c domain.Coordinate) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

// MockAreaRepository is a mock of AreaRepository
type MockAreaRepository struct {
	mock.Mock
}

func (m *MockAreaRepository) area(args mock.Arguments) (*domain.Area, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *MockAreaRepository) GetByID(ctx context.Context, id int64) (*domain.Area, error) {
	return m.area(m.Called(ctx, id))
}

func (m *MockAreaRepository) GetByName(ctx context.Context, name string) (*domain.Area, error) {
	return m.area(m.Called(ctx, name))
}

func (m *MockAreaRepository) List(ctx context.Context) ([]*domain.Area, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Area), args.Error(1)
}

func (m *MockAreaRepository) FindByNameFold(ctx context.Context, placeName string, excludeID int64) (*domain.Area, error) {
	return m.area(m.Called(ctx, placeName, excludeID))
}

func (m *MockAreaRepository) FindContainedIn(ctx context.Context, placeName string, excludeID int64) (*domain.Area, error) {
	return m.area(m.Called(ctx, placeName, excludeID))
}

func (m *MockAreaRepository) FindNearest(ctx context.Context, c domain.Coordinate, excludeID int64) (*domain.Area, error) {
	return m.area(m.Called(ctx, c, excludeID))
}

// MockGrievanceRepository is a mock of GrievanceRepository
type MockGrievanceRepository struct {
	mock.Mock
}

func (m *MockGrievanceRepository) Create(ctx context.Context, g *domain.Grievance, secret *domain.Secret) error {
	args := m.Called(ctx, g, secret)
	return args.Error(0)
}

func (m *MockGrievanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grievance), args.Error(1)
}

func (m *MockGrievanceRepository) GetSecret(ctx context.Context, id uuid.UUID) (*domain.Secret, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Secret), args.Error(1)
}

func (m *MockGrievanceRepository) List(ctx context.Context, visibility policy.Filter, filter domain.GrievanceListFilter) ([]*domain.Grievance, int, error) {
	args := m.Called(ctx, visibility, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Grievance), args.Int(1), args.Error(2)
}

func (m *MockGrievanceRepository) Nearby(ctx context.Context, center domain.Coordinate, radiusMeters float64, visibility policy.Filter) iter.Seq2[*domain.NearbyGrievance, error] {
	args := m.Called(ctx, center, radiusMeters, visibility)
	return args.Get(0).(iter.Seq2[*domain.NearbyGrievance, error])
}

func (m *MockGrievanceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, completedAt *time.Time) error {
	args := m.Called(ctx, id, status, completedAt)
	return args.Error(0)
}

func (m *MockGrievanceRepository) UpdateContent(ctx context.Context, g *domain.Grievance) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGrievanceRepository) UpdateLocation(ctx context.Context, id uuid.UUID, location string, areaID int64) error {
	args := m.Called(ctx, id, location, areaID)
	return args.Error(0)
}

func (m *MockGrievanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGrievanceRepository) ListWithoutArea(ctx context.Context, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockGrievanceRepository) ToggleLike(ctx context.Context, id uuid.UUID, userID int64) (bool, int, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockGrievanceRepository) IsLiked(ctx context.Context, id uuid.UUID, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// seqOf - последовательность для мока Nearby
func seqOf(items ...*domain.NearbyGrievance) iter.Seq2[*domain.NearbyGrievance, error] {
	return func(yield func(*domain.NearbyGrievance, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

func ptrFloat64(f float64) *float64 {
	return &f
}

func ptrInt64(i int64) *int64 {
	return &i
}

func ptrString(s string) *string {
	return &s
}

// assertSentinel проверяет конкретный sentinel, а не только код:
// ErrInvalidRadius и ErrInvalidCoordinates делят INVALID_ARGUMENT и через errors.Is неразличимы
func assertSentinel(t *testing.T, want *errors.AppError, err error) {
	t.Helper()
	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, want.Code, appErr.Code)
	assert.Equal(t, want.Message, appErr.Message)
}
