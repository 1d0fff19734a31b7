package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"go.uber.org/zap"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/pkg/metrics"
	"github.com/grievance-service/internal/pkg/utils"
)

// MatchStrategy - имя ступени сопоставления
type MatchStrategy string

const (
	StrategyExact     MatchStrategy = "exact"
	StrategySubstring MatchStrategy = "substring"
	StrategyNearest   MatchStrategy = "nearest"
	StrategyFallback  MatchStrategy = "fallback"
)

// MatchResult - найденный район и стратегия, которая его дала
type MatchResult struct {
	Area     *domain.Area
	Strategy MatchStrategy
}

// areaStrategy возвращает (nil, nil), если ступень ничего не нашла
type areaStrategy struct {
	name MatchStrategy
	find func(ctx context.Context, placeName string, c domain.Coordinate) (*domain.Area, error)
}

// AreaMatcher сопоставляет имя места и координату с районом.
// Ступени проверяются строго по порядку; первая найденная побеждает.
type AreaMatcher struct {
	repo       repository.AreaRepository
	unassigned *domain.Area
	strategies []areaStrategy
	logger     *zap.Logger
}

// NewAreaMatcher загружает зарезервированный район. Его отсутствие - ошибка конфигурации,
// сервис с ней не стартует.
func NewAreaMatcher(
	ctx context.Context,
	repo repository.AreaRepository,
	unassignedName string,
	logger *zap.Logger,
) (*AreaMatcher, error) {
	unassigned, err := repo.GetByName(ctx, unassignedName)
	if stderrors.Is(err, errors.ErrAreaNotFound) {
		return nil, errors.ErrUnassignedAreaMissing.WithDetails(map[string]interface{}{
			"name": unassignedName,
		})
	}
	if err != nil {
		return nil, err
	}

	m := &AreaMatcher{
		repo:       repo,
		unassigned: unassigned,
		logger:     logger,
	}
	m.strategies = []areaStrategy{
		{name: StrategyExact, find: m.exact},
		{name: StrategySubstring, find: m.substring},
		{name: StrategyNearest, find: m.nearest},
	}
	return m, nil
}

// Unassigned возвращает зарезервированный район
func (m *AreaMatcher) Unassigned() *domain.Area {
	return m.unassigned
}

// Match всегда возвращает район
func (m *AreaMatcher) Match(ctx context.Context, placeName string, c domain.Coordinate) MatchResult {
	placeName = strings.TrimSpace(placeName)

	for _, s := range m.strategies {
		area, err := s.find(ctx, placeName, c)
		if err != nil {
			m.logger.Warn("Area match strategy failed, trying next",
				zap.String("strategy", string(s.name)),
				zap.String("place_name", placeName),
				zap.Error(err))
			continue
		}
		if area == nil {
			m.logger.Debug("Area match strategy found nothing",
				zap.String("strategy", string(s.name)),
				zap.String("place_name", placeName))
			continue
		}
		return m.result(area, s.name, placeName)
	}

	return m.result(m.unassigned, StrategyFallback, placeName)
}

func (m *AreaMatcher) result(area *domain.Area, strategy MatchStrategy, placeName string) MatchResult {
	metrics.AreaMatchTotal.WithLabelValues(string(strategy)).Inc()
	m.logger.Debug("Area matched",
		zap.String("strategy", string(strategy)),
		zap.String("place_name", placeName),
		zap.String("area", area.Name),
		zap.Int64("area_id", area.ID))
	return MatchResult{Area: area, Strategy: strategy}
}

// CheckUnassigned проверяет, что зарезервированный район всё ещё существует (health check)
func (m *AreaMatcher) CheckUnassigned(ctx context.Context) error {
	_, err := m.repo.GetByID(ctx, m.unassigned.ID)
	if stderrors.Is(err, errors.ErrAreaNotFound) {
		return errors.ErrUnassignedAreaMissing
	}
	return err
}

// exact - совпадение имени без учёта регистра
func (m *AreaMatcher) exact(ctx context.Context, placeName string, _ domain.Coordinate) (*domain.Area, error) {
	if placeName == "" {
		return nil, nil
	}
	return notFoundAsNil(m.repo.FindByNameFold(ctx, placeName, 0))
}

// substring - имя района входит в имя места ("서울특별시 강남구" содержит "강남구")
func (m *AreaMatcher) substring(ctx context.Context, placeName string, _ domain.Coordinate) (*domain.Area, error) {
	if placeName == "" {
		return nil, nil
	}
	return notFoundAsNil(m.repo.FindContainedIn(ctx, placeName, m.unassigned.ID))
}

// nearest - район с ближайшим центром
func (m *AreaMatcher) nearest(ctx context.Context, _ string, c domain.Coordinate) (*domain.Area, error) {
	if !c.Valid() {
		return nil, nil
	}

	area, err := notFoundAsNil(m.repo.FindNearest(ctx, c, m.unassigned.ID))
	if area != nil {
		m.logger.Debug("Nearest area candidate",
			zap.String("area", area.Name),
			zap.Float64("distance_m", utils.HaversineMeters(c.Lat, c.Lon, area.Center.Lat, area.Center.Lon)))
	}
	return area, err
}

func notFoundAsNil(area *domain.Area, err error) (*domain.Area, error) {
	if stderrors.Is(err, errors.ErrAreaNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return area, nil
}
