package repository

import (
	"context"

	"github.com/grievance-service/internal/domain"
)

// GeocoderRepository - внешний провайдер обратного геокодирования
type GeocoderRepository interface {
	// ReverseGeocode возвращает имя района для координаты.
	// Любой сбой (сеть, таймаут, не-2xx, пустой ответ) возвращается ошибкой.
	ReverseGeocode(ctx context.Context, c domain.Coordinate) (string, error)
}
