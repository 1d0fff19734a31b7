// Package metrics - счётчики Prometheus для геокодирования, сопоставления районов и доступа к приватным жалобам.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GeocodeCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grievance_geocode_cache_hits_total",
		Help: "Total geocode cache hits",
	})
	GeocodeCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grievance_geocode_cache_misses_total",
		Help: "Total geocode cache misses",
	})
	GeocodeFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grievance_geocode_fallback_total",
		Help: "Total resolutions that fell back to the numeric coordinate string",
	})
	GeocoderRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grievance_geocoder_requests_total",
		Help: "Total reverse geocoding provider requests",
	})
	GeocoderFailTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grievance_geocoder_fail_total",
		Help: "Total reverse geocoding provider failures (network, status, empty result)",
	})
	GeocoderDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "grievance_geocoder_duration_ms",
		Help:    "Reverse geocoding provider call duration in milliseconds",
		Buckets: []float64{10, 25, 50, 100, 200, 500, 1000, 2500, 5000},
	})
	AreaMatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grievance_area_match_total",
		Help: "Area matches by the strategy that produced them",
	}, []string{"strategy"})
	AccessDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grievance_access_decisions_total",
		Help: "Single-grievance access decisions by reason",
	}, []string{"reason"})
)
