package backfill_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/config"
	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/usecase"
	"github.com/grievance-service/internal/worker/backfill"
)

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

// MockAreaLocator is a mock of AreaLocator
type MockAreaLocator struct {
	mock.Mock
}

func (m *MockAreaLocator) Enqueue(ctx context.Context, batch int) (int, error) {
	args := m.Called(ctx, batch)
	return args.Int(0), args.Error(1)
}

func (m *MockAreaLocator) Locate(ctx context.Context, id uuid.UUID) (*usecase.MatchResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MatchResult), args.Error(1)
}

var testConfig = config.WorkerConfig{
	ConsumerGroup: "test-group",
	MaxRetries:    3,
	BackfillBatch: 25,
	SweepInterval: time.Hour,
}

func eventMessage(t *testing.T, id string, grievanceID uuid.UUID, attempt int) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(domain.GrievanceLocateEvent{
		EventID:     uuid.New(),
		GrievanceID: grievanceID,
		Attempt:     attempt,
		CreatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func TestAreaBackfillWorker_Name(t *testing.T) {
	w := backfill.NewAreaBackfillWorker(&MockStreamRepository{}, &MockAreaLocator{}, testConfig, zap.NewNop())

	assert.Equal(t, "area-backfill", w.Name())
	assert.Equal(t, "test-group", w.ConsumerGroup())
	assert.Contains(t, w.ConsumerName(), "area-backfill-")
}

func TestAreaBackfillWorker_ProcessesEvents(t *testing.T) {
	stream := &MockStreamRepository{}
	locator := &MockAreaLocator{}

	located := uuid.New()
	flaky := uuid.New()
	exhausted := uuid.New()
	deleted := uuid.New()

	messages := make(chan domain.StreamMessage, 5)
	messages <- eventMessage(t, "1-0", located, 0)
	messages <- domain.StreamMessage{ID: "2-0", Data: "{not json"}
	messages <- eventMessage(t, "3-0", flaky, 0)
	messages <- eventMessage(t, "4-0", exhausted, 2)
	messages <- eventMessage(t, "5-0", deleted, 0)

	var acked, swept atomic.Int32
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamGrievanceLocate, "test-group").Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.StreamGrievanceLocate, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(messages), nil)
	stream.On("AckMessage", mock.Anything, domain.StreamGrievanceLocate, "test-group", mock.Anything).
		Run(func(mock.Arguments) { acked.Add(1) }).
		Return(nil)
	stream.On("PublishToStream", mock.Anything, domain.StreamGrievanceLocate, mock.MatchedBy(func(e *domain.GrievanceLocateEvent) bool {
		return e.GrievanceID == flaky && e.Attempt == 1
	})).Return(nil).Once()

	locator.On("Enqueue", mock.Anything, 25).
		Run(func(mock.Arguments) { swept.Add(1) }).
		Return(0, nil)
	locator.On("Locate", mock.Anything, located).Return(&usecase.MatchResult{Strategy: usecase.StrategyExact}, nil)
	locator.On("Locate", mock.Anything, flaky).Return(nil, errors.ErrDatabaseError)
	locator.On("Locate", mock.Anything, exhausted).Return(nil, errors.ErrDatabaseError)
	locator.On("Locate", mock.Anything, deleted).Return(nil, errors.ErrGrievanceNotFound)

	w := backfill.NewAreaBackfillWorker(stream, locator, testConfig, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- w.Start(t.Context()) }()

	require.Eventually(t, func() bool { return acked.Load() == 5 }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return swept.Load() > 0 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	stream.AssertNumberOfCalls(t, "PublishToStream", 1)
}

func TestAreaBackfillWorker_ConsumerGroupError(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamGrievanceLocate, "test-group").Return(stderrors.New("redis down"))

	w := backfill.NewAreaBackfillWorker(stream, &MockAreaLocator{}, testConfig, zap.NewNop())

	assert.Error(t, w.Start(t.Context()))
	stream.AssertNotCalled(t, "ConsumeStream", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAreaBackfillWorker_StopsOnContextCancel(t *testing.T) {
	stream := &MockStreamRepository{}
	locator := &MockAreaLocator{}
	messages := make(chan domain.StreamMessage)

	stream.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	stream.On("ConsumeStream", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return((<-chan domain.StreamMessage)(messages), nil)
	locator.On("Enqueue", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	w := backfill.NewAreaBackfillWorker(stream, locator, testConfig, zap.NewNop())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
