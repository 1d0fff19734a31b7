package backfill

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/config"
	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/usecase"
	"github.com/grievance-service/internal/worker"
)

const (
	workerName           = "area-backfill"
	defaultSweepInterval = time.Minute
)

// AreaLocator - то, что воркеру нужно от BackfillUseCase
type AreaLocator interface {
	Enqueue(ctx context.Context, batch int) (int, error)
	Locate(ctx context.Context, id uuid.UUID) (*usecase.MatchResult, error)
}

// AreaBackfillWorker назначает район жалобам, у которых он ещё NULL.
// Периодически публикует события в stream:grievance:locate и сам же их потребляет.
type AreaBackfillWorker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	locator       AreaLocator
	batch         int
	sweepInterval time.Duration
}

// NewAreaBackfillWorker создает новый AreaBackfillWorker
func NewAreaBackfillWorker(
	streamRepo repository.StreamRepository,
	locator AreaLocator,
	cfg config.WorkerConfig,
	logger *zap.Logger,
) *AreaBackfillWorker {
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &AreaBackfillWorker{
		BaseWorker:    worker.NewBaseWorker(workerName, cfg.ConsumerGroup, cfg.MaxRetries, logger),
		streamRepo:    streamRepo,
		locator:       locator,
		batch:         cfg.BackfillBatch,
		sweepInterval: interval,
	}
}

// Start блокируется до Stop или отмены ctx
func (w *AreaBackfillWorker) Start(ctx context.Context) error {
	logger := w.Logger()

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamGrievanceLocate, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.StopChan():
			cancel()
		case <-ctx.Done():
		}
	}()

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamGrievanceLocate, w.ConsumerGroup(), w.ConsumerName())
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	logger.Info("Area backfill worker started",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch", w.batch),
		zap.Duration("sweep_interval", w.sweepInterval))

	go w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Area backfill worker stopped")
			return nil
		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream closed, area backfill worker stopped")
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

// sweep публикует события для жалоб без района: сразу и затем каждые sweepInterval.
// Жалобы, событие которых ещё в стриме, Enqueue пропускает.
func (w *AreaBackfillWorker) sweep(ctx context.Context) {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	for {
		if _, err := w.locator.Enqueue(ctx, w.batch); err != nil && ctx.Err() == nil {
			w.Logger().Error("Backfill sweep failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// handle обрабатывает одно событие. Сообщение подтверждается всегда: повтор идёт новым событием
// с увеличенным Attempt, а не через pending-список.
func (w *AreaBackfillWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))
	defer w.ack(ctx, msg.ID)

	var event domain.GrievanceLocateEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse backfill event, skipping", zap.Error(err))
		return
	}
	logger = logger.With(
		zap.String("grievance_id", event.GrievanceID.String()),
		zap.Int("attempt", event.Attempt))

	_, err := w.locator.Locate(ctx, event.GrievanceID)
	if err == nil {
		return
	}
	if stderrors.Is(err, errors.ErrGrievanceNotFound) {
		logger.Debug("Grievance deleted before backfill, skipping")
		return
	}
	if !w.ShouldRetry(event.Attempt) {
		logger.Error("Backfill failed, giving up", zap.Error(err))
		return
	}

	logger.Warn("Backfill failed, scheduling retry", zap.Error(err))
	retry := event
	retry.EventID = uuid.New()
	retry.Attempt++
	retry.CreatedAt = time.Now().UTC()
	if err := w.streamRepo.PublishToStream(ctx, domain.StreamGrievanceLocate, &retry); err != nil {
		logger.Error("Failed to publish retry event", zap.Error(err))
	}
}

func (w *AreaBackfillWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamGrievanceLocate, w.ConsumerGroup(), id); err != nil {
		w.Logger().Warn("Failed to ack message, it stays pending",
			zap.String("message_id", id),
			zap.Error(err))
	}
}
