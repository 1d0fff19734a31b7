package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/validator"
	"github.com/grievance-service/internal/usecase/dto"
)

// AreaUseCase - чтение районов, диагностика сопоставления и обратное геокодирование
type AreaUseCase struct {
	repo     repository.AreaRepository
	matcher  *AreaMatcher
	resolver *LocationResolver
	logger   *zap.Logger
}

// NewAreaUseCase - создание нового AreaUseCase
func NewAreaUseCase(
	repo repository.AreaRepository,
	matcher *AreaMatcher,
	resolver *LocationResolver,
	logger *zap.Logger,
) *AreaUseCase {
	return &AreaUseCase{
		repo:     repo,
		matcher:  matcher,
		resolver: resolver,
		logger:   logger,
	}
}

// List - все районы по имени
func (uc *AreaUseCase) List(ctx context.Context) (*dto.ListAreasResponse, error) {
	areas, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ListAreasResponse{Items: areas, Total: len(areas)}, nil
}

// Get - район по ID
func (uc *AreaUseCase) Get(ctx context.Context, id int64) (*domain.Area, error) {
	return uc.repo.GetByID(ctx, id)
}

// Match показывает, какой район и какой стратегией будет выбран для места
func (uc *AreaUseCase) Match(ctx context.Context, req dto.MatchAreaRequest) (*dto.MatchAreaResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	result := uc.matcher.Match(ctx, req.PlaceName, domain.Coordinate{Lat: *req.Latitude, Lon: *req.Longitude})
	return &dto.MatchAreaResponse{Area: result.Area, Strategy: string(result.Strategy)}, nil
}

// Resolve - обратное геокодирование; при недоступности провайдера возвращается числовая строка
func (uc *AreaUseCase) Resolve(ctx context.Context, req dto.ResolveLocationRequest) (*dto.ResolveLocationResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	res := uc.resolver.ResolveDetailed(ctx, domain.Coordinate{Lat: *req.Latitude, Lon: *req.Longitude})
	return &dto.ResolveLocationResponse{
		PlaceName: res.PlaceName,
		Source:    string(res.Source),
		Latitude:  res.Coordinate.Lat,
		Longitude: res.Coordinate.Lon,
	}, nil
}

// CheckUnassigned - health check зарезервированного района
func (uc *AreaUseCase) CheckUnassigned(ctx context.Context) error {
	return uc.matcher.CheckUnassigned(ctx)
}
