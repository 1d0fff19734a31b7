package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
)

type cacheRepository struct {
	redis  *Redis
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		redis:  redis,
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

// Set - SET с TTL атомарно перезаписывает значение; при гонке побеждает последняя запись
func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		r.logger.Error("Failed to setnx cache", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache setnx error: %w", err)
	}

	r.logger.Debug("Cache setnx", zap.String("key", key), zap.Bool("stored", ok))
	return ok, nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetPlaceName читает имя места по квантованной координате
func (r *cacheRepository) GetPlaceName(ctx context.Context, c domain.Coordinate) (string, bool, error) {
	data, err := r.Get(ctx, c.Quantize().CacheKey())
	if err != nil {
		return "", false, err
	}
	if data == nil {
		return "", false, nil
	}
	return string(data), true, nil
}

// SetPlaceName сохраняет имя места по квантованной координате
func (r *cacheRepository) SetPlaceName(ctx context.Context, c domain.Coordinate, name string, ttl time.Duration) error {
	return r.Set(ctx, c.Quantize().CacheKey(), []byte(name), ttl)
}

func (r *cacheRepository) Health(ctx context.Context) error {
	return r.redis.Health(ctx)
}
