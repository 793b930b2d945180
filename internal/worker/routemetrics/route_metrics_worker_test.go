package routemetrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-service/internal/domain"
	apperrors "github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/worker/routemetrics"
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

type MockRecomputer struct {
	mock.Mock
}

func (m *MockRecomputer) RecomputeMetrics(ctx context.Context, routeID int64) (*domain.RouteMetrics, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteMetrics), args.Error(1)
}

const group = "route-metrics-workers"

// runWorker feeds msgs through a closed channel and waits for the worker to drain it.
func runWorker(t *testing.T, stream *MockStreamRepository, recomputer *MockRecomputer, msgs ...domain.StreamMessage) {
	t.Helper()

	ch := make(chan domain.StreamMessage, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	close(ch)

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamRouteMetrics, group).Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.StreamRouteMetrics, group, mock.AnythingOfType("string")).
		Return((<-chan domain.StreamMessage)(ch), nil)

	w := routemetrics.NewRouteMetricsWorker(stream, recomputer, group, zap.NewNop())
	assert.Equal(t, "route-metrics", w.Name())

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not finish")
	}
}

func TestRouteMetricsWorker(t *testing.T) {
	t.Run("recomputes and acks", func(t *testing.T) {
		stream := &MockStreamRepository{}
		recomputer := &MockRecomputer{}

		recomputer.On("RecomputeMetrics", mock.Anything, int64(2)).
			Return(&domain.RouteMetrics{DistanceMeters: 1000, DurationSeconds: 60}, nil)
		stream.On("AckMessage", mock.Anything, domain.StreamRouteMetrics, group, "1-0").Return(nil)

		runWorker(t, stream, recomputer, domain.StreamMessage{ID: "1-0", Data: `{"route_id":2,"requested_by":1}`})

		recomputer.AssertExpectations(t)
		stream.AssertExpectations(t)
	})

	t.Run("provider outage still acks with empty metrics", func(t *testing.T) {
		stream := &MockStreamRepository{}
		recomputer := &MockRecomputer{}

		recomputer.On("RecomputeMetrics", mock.Anything, int64(2)).Return(nil, nil)
		stream.On("AckMessage", mock.Anything, domain.StreamRouteMetrics, group, "1-0").Return(nil)

		runWorker(t, stream, recomputer, domain.StreamMessage{ID: "1-0", Data: `{"route_id":2}`})

		stream.AssertExpectations(t)
	})

	t.Run("garbage is acked and skipped", func(t *testing.T) {
		stream := &MockStreamRepository{}
		recomputer := &MockRecomputer{}

		stream.On("AckMessage", mock.Anything, domain.StreamRouteMetrics, group, mock.Anything).Return(nil)

		runWorker(t, stream, recomputer,
			domain.StreamMessage{ID: "1-0", Data: "not json"},
			domain.StreamMessage{ID: "2-0"},
			domain.StreamMessage{ID: "3-0", Data: `{"route_id":0}`},
		)

		stream.AssertNumberOfCalls(t, "AckMessage", 3)
		recomputer.AssertNotCalled(t, "RecomputeMetrics", mock.Anything, mock.Anything)
	})

	t.Run("deleted route is acked", func(t *testing.T) {
		stream := &MockStreamRepository{}
		recomputer := &MockRecomputer{}

		recomputer.On("RecomputeMetrics", mock.Anything, int64(9)).Return(nil, apperrors.ErrRouteNotFound)
		stream.On("AckMessage", mock.Anything, domain.StreamRouteMetrics, group, "1-0").Return(nil)

		runWorker(t, stream, recomputer, domain.StreamMessage{ID: "1-0", Data: `{"route_id":9}`})

		stream.AssertExpectations(t)
	})

	t.Run("storage failure leaves message pending", func(t *testing.T) {
		stream := &MockStreamRepository{}
		recomputer := &MockRecomputer{}

		recomputer.On("RecomputeMetrics", mock.Anything, int64(2)).Return(nil, errors.New("db down"))

		runWorker(t, stream, recomputer, domain.StreamMessage{ID: "1-0", Data: `{"route_id":2}`})

		stream.AssertNotCalled(t, "AckMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRouteMetricsWorker_Stop(t *testing.T) {
	stream := &MockStreamRepository{}
	ch := make(chan domain.StreamMessage)

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamRouteMetrics, group).Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.StreamRouteMetrics, group, mock.Anything).
		Return((<-chan domain.StreamMessage)(ch), nil)

	w := routemetrics.NewRouteMetricsWorker(stream, &MockRecomputer{}, group, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
