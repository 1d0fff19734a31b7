package worker

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// BaseWorker - общее для воркеров, читающих Redis Stream через consumer group:
// сигнал остановки, имя потребителя и политика повторов
type BaseWorker struct {
	name          string
	consumerGroup string
	consumerName  string
	maxRetries    int
	logger        *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewBaseWorker создает новый BaseWorker. Имя потребителя уникально для процесса (hostname-pid).
func NewBaseWorker(name, consumerGroup string, maxRetries int, logger *zap.Logger) *BaseWorker {
	hostname, _ := os.Hostname()
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		consumerName:  fmt.Sprintf("%s-%s-%d", name, hostname, os.Getpid()),
		maxRetries:    maxRetries,
		logger:        logger.With(zap.String("worker", name)),
		stopChan:      make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop сигнализирует воркеру завершиться; повторный вызов ничего не делает
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopChan)
	})
	return nil
}

// IsStopped проверяет, был ли вызван Stop
func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}

func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

func (w *BaseWorker) ConsumerName() string {
	return w.consumerName
}

// ShouldRetry - attempt считается с нуля; всего делается maxRetries попыток
func (w *BaseWorker) ShouldRetry(attempt int) bool {
	return attempt+1 < w.maxRetries
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
