package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/errors"
)

// queuedKeyPrefix - маркер "событие уже в стриме"; пока он жив, sweep жалобу не публикует
const queuedKeyPrefix = "backfill:queued:"

func queuedKey(id uuid.UUID) string {
	return queuedKeyPrefix + id.String()
}

// BackfillUseCase дозаполняет район у жалоб, созданных до появления сопоставления
type BackfillUseCase struct {
	grievances repository.GrievanceRepository
	streams    repository.StreamRepository
	cache      repository.CacheRepository
	resolver   *LocationResolver
	matcher    *AreaMatcher
	queuedTTL  time.Duration
	logger     *zap.Logger
}

// NewBackfillUseCase - создание нового BackfillUseCase
func NewBackfillUseCase(
	grievances repository.GrievanceRepository,
	streams repository.StreamRepository,
	cache repository.CacheRepository,
	resolver *LocationResolver,
	matcher *AreaMatcher,
	queuedTTL time.Duration,
	logger *zap.Logger,
) *BackfillUseCase {
	return &BackfillUseCase{
		grievances: grievances,
		streams:    streams,
		cache:      cache,
		resolver:   resolver,
		matcher:    matcher,
		queuedTTL:  queuedTTL,
		logger:     logger,
	}
}

// Enqueue публикует событие для каждой жалобы без района, у которой нет маркера в Redis;
// возвращает число опубликованных. Жалоба, исчерпавшая повторы, снова попадёт в sweep только после истечения маркера.
func (uc *BackfillUseCase) Enqueue(ctx context.Context, batch int) (int, error) {
	ids, err := uc.grievances.ListWithoutArea(ctx, batch)
	if err != nil {
		return 0, err
	}

	published, skipped := 0, 0
	for _, id := range ids {
		fresh, err := uc.cache.SetNX(ctx, queuedKey(id), []byte("1"), uc.queuedTTL)
		if err != nil {
			uc.logger.Warn("Queued marker unavailable, publishing anyway",
				zap.String("id", id.String()),
				zap.Error(err))
		} else if !fresh {
			skipped++
			continue
		}

		event := &domain.GrievanceLocateEvent{
			EventID:     uuid.New(),
			GrievanceID: id,
			CreatedAt:   time.Now().UTC(),
		}
		if err := uc.streams.PublishToStream(ctx, domain.StreamGrievanceLocate, event); err != nil {
			uc.clearQueued(ctx, id)
			return published, err
		}
		published++
	}

	if published > 0 || skipped > 0 {
		uc.logger.Info("Backfill events published",
			zap.Int("count", published),
			zap.Int("already_queued", skipped))
	}
	return published, nil
}

// Locate записывает имя места (если его нет) и район одной жалобы.
// Жалоба с уже назначенным районом не трогается, поэтому повторная доставка события безопасна.
func (uc *BackfillUseCase) Locate(ctx context.Context, id uuid.UUID) (*MatchResult, error) {
	g, err := uc.grievances.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, errors.ErrGrievanceNotFound) {
			uc.clearQueued(ctx, id)
		}
		return nil, err
	}
	if g.AreaID != nil {
		uc.logger.Debug("Grievance already has area, skipping", zap.String("id", id.String()))
		uc.clearQueued(ctx, id)
		return nil, nil
	}

	location := g.Location
	if location == "" {
		location = uc.resolver.Resolve(ctx, g.Coordinate)
	}

	match := uc.matcher.Match(ctx, location, g.Coordinate)
	if err := uc.grievances.UpdateLocation(ctx, id, location, match.Area.ID); err != nil {
		return nil, err
	}

	uc.logger.Info("Grievance area backfilled",
		zap.String("id", id.String()),
		zap.String("location", location),
		zap.String("area", match.Area.Name),
		zap.String("strategy", string(match.Strategy)))

	uc.clearQueued(ctx, id)
	return &match, nil
}

// clearQueued снимает маркер; ошибка не критична, маркер истечёт сам
func (uc *BackfillUseCase) clearQueued(ctx context.Context, id uuid.UUID) {
	if err := uc.cache.Delete(ctx, queuedKey(id)); err != nil {
		uc.logger.Warn("Failed to clear queued marker", zap.String("id", id.String()), zap.Error(err))
	}
}
