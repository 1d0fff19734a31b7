package repository

import (
	"context"
	"time"

	"github.com/grievance-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; промах - (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX сохраняет значение, только если ключа ещё нет; false - ключ уже занят
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetPlaceName возвращает закешированное имя места для квантованной координаты.
	// found=false при промахе.
	GetPlaceName(ctx context.Context, c domain.Coordinate) (name string, found bool, err error)

	// SetPlaceName сохраняет имя места для квантованной координаты
	SetPlaceName(ctx context.Context, c domain.Coordinate, name string, ttl time.Duration) error

	// Health проверяет соединение с кешем
	Health(ctx context.Context) error
}
