package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/worker"
)

// blockingWorker работает, пока его не остановят
type blockingWorker struct {
	*worker.BaseWorker
	started atomic.Bool
	ignore  bool
}

func newBlockingWorker(name string) *blockingWorker {
	return &blockingWorker{BaseWorker: worker.NewBaseWorker(name, "group", 3, zap.NewNop())}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	if w.ignore {
		<-ctx.Done()
		return nil
	}
	select {
	case <-w.StopChan():
	case <-ctx.Done():
	}
	return nil
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop())
	a, b := newBlockingWorker("a"), newBlockingWorker("b")
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(t.Context()))
	require.Eventually(t, func() bool { return a.started.Load() && b.started.Load() }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	require.NoError(t, m.Stop(ctx))

	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
	assert.Error(t, m.Start(t.Context()))
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	assert.Error(t, worker.NewWorkerManager(zap.NewNop()).Start(t.Context()))
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop())
	stuck := newBlockingWorker("stuck")
	stuck.ignore = true
	m.Register(stuck)

	runCtx, stopRun := context.WithCancel(t.Context())
	defer stopRun()
	require.NoError(t, m.Start(runCtx))

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Stop(ctx), context.DeadlineExceeded)
}

func TestBaseWorker(t *testing.T) {
	w := worker.NewBaseWorker("backfill", "group", 3, zap.NewNop())

	assert.True(t, w.ShouldRetry(0))
	assert.True(t, w.ShouldRetry(1))
	assert.False(t, w.ShouldRetry(2))

	assert.False(t, w.IsStopped())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	assert.False(t, worker.NewBaseWorker("once", "group", 0, zap.NewNop()).ShouldRetry(0))
}
