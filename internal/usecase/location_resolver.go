package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/metrics"
)

// ResolutionSource - откуда взято имя места
type ResolutionSource string

const (
	SourceCache    ResolutionSource = "cache"
	SourceProvider ResolutionSource = "provider"
	SourceFallback ResolutionSource = "fallback"
)

// Resolution - результат обратного геокодирования
type Resolution struct {
	PlaceName  string
	Source     ResolutionSource
	Coordinate domain.Coordinate
}

// LocationResolver превращает координату в имя места: кеш, затем провайдер, затем числовая строка.
// Наружу ошибок не возвращает.
type LocationResolver struct {
	cache    repository.CacheRepository
	geocoder repository.GeocoderRepository
	ttl      time.Duration
	timeout  time.Duration
	group    singleflight.Group
	logger   *zap.Logger
}

// NewLocationResolver - cache может быть nil, тогда каждый вызов идёт к провайдеру
func NewLocationResolver(
	cache repository.CacheRepository,
	geocoder repository.GeocoderRepository,
	ttl time.Duration,
	timeout time.Duration,
	logger *zap.Logger,
) *LocationResolver {
	return &LocationResolver{
		cache:    cache,
		geocoder: geocoder,
		ttl:      ttl,
		timeout:  timeout,
		logger:   logger,
	}
}

// Resolve возвращает имя места для координаты
func (r *LocationResolver) Resolve(ctx context.Context, c domain.Coordinate) string {
	return r.ResolveDetailed(ctx, c).PlaceName
}

// ResolveDetailed - Resolve вместе с источником результата
func (r *LocationResolver) ResolveDetailed(ctx context.Context, c domain.Coordinate) Resolution {
	q := c.Quantize()

	if name, ok := r.fromCache(ctx, q); ok {
		metrics.GeocodeCacheHitsTotal.Inc()
		return Resolution{PlaceName: name, Source: SourceCache, Coordinate: q}
	}
	metrics.GeocodeCacheMissesTotal.Inc()

	// Одновременные промахи по одному ключу делят один запрос к провайдеру
	v, _, _ := r.group.Do(q.CacheKey(), func() (interface{}, error) {
		return r.fetch(ctx, q), nil
	})
	return v.(Resolution)
}

func (r *LocationResolver) fromCache(ctx context.Context, q domain.Coordinate) (string, bool) {
	if r.cache == nil {
		return "", false
	}

	name, found, err := r.cache.GetPlaceName(ctx, q)
	if err != nil {
		r.logger.Warn("Geocode cache read failed, treating as miss",
			zap.String("key", q.CacheKey()),
			zap.Error(err))
		return "", false
	}
	return name, found && name != ""
}

// fetch - одна попытка у провайдера. Контекст отвязан от отмены вызывающего,
// потому что результат разделяется между ожидающими в singleflight.
func (r *LocationResolver) fetch(ctx context.Context, q domain.Coordinate) Resolution {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	name, err := r.geocoder.ReverseGeocode(callCtx, q)
	if err != nil || name == "" {
		metrics.GeocodeFallbackTotal.Inc()
		r.logger.Warn("Reverse geocoding failed, using coordinate fallback",
			zap.Float64("lat", q.Lat),
			zap.Float64("lon", q.Lon),
			zap.Error(err))
		return Resolution{PlaceName: q.FallbackName(), Source: SourceFallback, Coordinate: q}
	}

	if r.cache != nil {
		if err := r.cache.SetPlaceName(callCtx, q, name, r.ttl); err != nil {
			r.logger.Warn("Geocode cache write failed",
				zap.String("key", q.CacheKey()),
				zap.Error(err))
		}
	}

	return Resolution{PlaceName: name, Source: SourceProvider, Coordinate: q}
}
