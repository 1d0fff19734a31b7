package repository

import (
	"context"

	"github.com/grievance-service/internal/domain"
)

// AreaRepository определяет методы для работы с районами
type AreaRepository interface {
	// GetByID возвращает район по ID
	GetByID(ctx context.Context, id int64) (*domain.Area, error)

	// GetByName возвращает район с точным именем
	GetByName(ctx context.Context, name string) (*domain.Area, error)

	// List возвращает все районы, отсортированные по имени
	List(ctx context.Context) ([]*domain.Area, error)

	// FindByNameFold ищет район, имя которого совпадает с placeName без учёта регистра.
	// excludeID исключает зарезервированный район.
	FindByNameFold(ctx context.Context, placeName string, excludeID int64) (*domain.Area, error)

	// FindContainedIn ищет первый (по имени, затем id) район, имя которого является подстрокой placeName
	FindContainedIn(ctx context.Context, placeName string, excludeID int64) (*domain.Area, error)

	// FindNearest возвращает район с ближайшим центром
	FindNearest(ctx context.Context, c domain.Coordinate, excludeID int64) (*domain.Area, error)
}
