package repository

import (
	"context"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/policy"
)

// GrievanceRepository определяет методы для работы с жалобами
type GrievanceRepository interface {
	// Create сохраняет жалобу и, если передан, её Secret в одной транзакции
	Create(ctx context.Context, g *domain.Grievance, secret *domain.Secret) error

	// GetByID возвращает жалобу вместе с именем и руководителем района
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error)

	// GetSecret возвращает Secret жалобы или (nil, nil), если его нет
	GetSecret(ctx context.Context, id uuid.UUID) (*domain.Secret, error)

	// List возвращает страницу ленты, видимую через фильтр, в порядке filter.Ordering, и общее количество
	List(ctx context.Context, visibility policy.Filter, filter domain.GrievanceListFilter) ([]*domain.Grievance, int, error)

	// Nearby лениво отдаёт жалобы в радиусе radiusMeters, от ближних к дальним.
	// Потребитель может прервать итерацию в любой момент.
	Nearby(ctx context.Context, center domain.Coordinate, radiusMeters float64, visibility policy.Filter) iter.Seq2[*domain.NearbyGrievance, error]

	// UpdateStatus меняет статус и completed_at
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, completedAt *time.Time) error

	// UpdateContent меняет редактируемые автором поля
	UpdateContent(ctx context.Context, g *domain.Grievance) error

	// UpdateLocation записывает имя места и район
	UpdateLocation(ctx context.Context, id uuid.UUID, location string, areaID int64) error

	// Delete удаляет жалобу; Secret и лайки удаляются каскадно
	Delete(ctx context.Context, id uuid.UUID) error

	// ListWithoutArea возвращает ID жалоб без района, от старых к новым
	ListWithoutArea(ctx context.Context, limit int) ([]uuid.UUID, error)

	// ToggleLike ставит или снимает лайк; возвращает новое состояние и число лайков
	ToggleLike(ctx context.Context, id uuid.UUID, userID int64) (liked bool, count int, err error)

	// IsLiked проверяет, лайкнул ли пользователь жалобу
	IsLiked(ctx context.Context, id uuid.UUID, userID int64) (bool, error)
}
