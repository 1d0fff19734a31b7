package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/grievance-service/internal/config"
	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/pkg/metrics"
)

const (
	headerClientID     = "X-NCP-APIGW-API-KEY-ID"
	headerClientSecret = "X-NCP-APIGW-API-KEY"

	// statusOK - status.code успешного ответа
	statusOK = 0
	// maxErrorBody - сколько байт тела ошибки попадает в лог
	maxErrorBody = 512
)

type client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	logger       *zap.Logger
}

// NewReverseGeocodeClient создает клиент Naver Cloud Platform Reverse Geocoding API
func NewReverseGeocodeClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		logger:       logger,
	}
}

type reverseGeocodeResponse struct {
	Status struct {
		Code    int    `json:"code"`
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"status"`
	Results []struct {
		Name   string `json:"name"`
		Region struct {
			Area1 regionArea `json:"area1"`
			Area2 regionArea `json:"area2"`
			Area3 regionArea `json:"area3"`
		} `json:"region"`
	} `json:"results"`
}

type regionArea struct {
	Name string `json:"name"`
}

// placeName - area2 (구/군), если он есть, иначе area3 (동/읍/면)
func (r *reverseGeocodeResponse) placeName() string {
	if len(r.Results) == 0 {
		return ""
	}
	region := r.Results[0].Region
	if name := strings.TrimSpace(region.Area2.Name); name != "" {
		return name
	}
	return strings.TrimSpace(region.Area3.Name)
}

// ReverseGeocode - одна попытка без повторов, ограниченная таймаутом HTTP-клиента
func (c *client) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (string, error) {
	metrics.GeocoderRequestsTotal.Inc()
	start := time.Now()
	defer func() {
		metrics.GeocoderDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	}()

	name, err := c.reverseGeocode(ctx, coord)
	if err != nil {
		metrics.GeocoderFailTotal.Inc()
		return "", err
	}
	return name, nil
}

func (c *client) reverseGeocode(ctx context.Context, coord domain.Coordinate) (string, error) {
	params := url.Values{}
	params.Set("coords", strconv.FormatFloat(coord.Lon, 'f', -1, 64)+","+strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Set("output", "json")
	params.Set("orders", "addr")

	reqURL := c.baseURL + "?" + params.Encode()

	c.logger.Debug("Calling reverse geocoding API",
		zap.Float64("lat", coord.Lat),
		zap.Float64("lon", coord.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(headerClientID, c.clientID)
	req.Header.Set(headerClientSecret, c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status %d, body: %s", errors.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	var parsed reverseGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", errors.ErrUpstreamUnavailable, err)
	}

	if parsed.Status.Code != statusOK {
		return "", fmt.Errorf("%w: status code %d (%s)", errors.ErrUpstreamUnavailable, parsed.Status.Code, parsed.Status.Name)
	}

	name := parsed.placeName()
	if name == "" {
		return "", fmt.Errorf("%w: no region name in %d results", errors.ErrUpstreamUnavailable, len(parsed.Results))
	}

	c.logger.Debug("Reverse geocoding successful",
		zap.String("place_name", name),
		zap.String("region", parsed.Results[0].Region.Area1.Name))

	return name, nil
}
