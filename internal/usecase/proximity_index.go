package usecase

import (
	"context"
	"iter"

	"go.uber.org/zap"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/pkg/utils"
	"github.com/grievance-service/internal/policy"
)

// ProximityIndex - запросы "жалобы в радиусе R от точки P".
// Расстояние считает хранилище (PostGIS geography), в память весь набор не загружается.
type ProximityIndex struct {
	repo   repository.GrievanceRepository
	logger *zap.Logger
}

func NewProximityIndex(repo repository.GrievanceRepository, logger *zap.Logger) *ProximityIndex {
	return &ProximityIndex{repo: repo, logger: logger}
}

// Nearby проверяет аргументы и возвращает ленивую последовательность от ближних к дальним.
// Каждый проход по последовательности заново выполняет запрос.
func (p *ProximityIndex) Nearby(
	ctx context.Context,
	center domain.Coordinate,
	radiusKm float64,
	visibility policy.Filter,
) (iter.Seq2[*domain.NearbyGrievance, error], error) {
	if !center.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(radiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	p.logger.Debug("Nearby query",
		zap.Float64("lat", center.Lat),
		zap.Float64("lon", center.Lon),
		zap.Float64("radius_km", radiusKm))

	return p.repo.Nearby(ctx, center, radiusKm*1000, visibility), nil
}

// Collect читает не больше limit элементов; truncated=true, если в радиусе есть ещё
func Collect(seq iter.Seq2[*domain.NearbyGrievance, error], limit int) (items []*domain.NearbyGrievance, truncated bool, err error) {
	items = make([]*domain.NearbyGrievance, 0)
	for item, err := range seq {
		if err != nil {
			return nil, false, err
		}
		if limit > 0 && len(items) == limit {
			return items, true, nil
		}
		items = append(items, item)
	}
	return items, false, nil
}
