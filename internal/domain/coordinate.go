package domain

import (
	"fmt"
	"math"
)

// Coordinate - пара широта/долгота (WGS84). Значение неизменяемое, передаётся по значению.
type Coordinate struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lng" db:"lng"`
}

// NewCoordinate проверяет диапазоны и возвращает координату
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	c := Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("coordinate out of range: lat=%v lon=%v", lat, lon)
	}
	return c, nil
}

// Valid - широта в [-90, 90], долгота в [-180, 180]
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Quantize округляет координату до 4 знаков (~11 м)
func (c Coordinate) Quantize() Coordinate {
	return Coordinate{Lat: round4(c.Lat), Lon: round4(c.Lon)}
}

// CacheKey - ключ кеша геокодирования для квантованной координаты
func (c Coordinate) CacheKey() string {
	return fmt.Sprintf("geocode:%.4f:%.4f", c.Lat, c.Lon)
}

// FallbackName - детерминированное имя места, когда провайдер ничего не вернул
func (c Coordinate) FallbackName() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lon)
}

func (c Coordinate) String() string {
	return c.FallbackName()
}

func round4(v float64) float64 {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return 0 // -0.0000 и 0.0000 должны давать один ключ
	}
	return r
}
