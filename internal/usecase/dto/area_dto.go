package dto

import "github.com/grievance-service/internal/domain"

// MatchAreaRequest - диагностика сопоставления района
type MatchAreaRequest struct {
	PlaceName string   `json:"place_name" example:"서울특별시 강남구"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude" example:"37.5013"`
	Longitude *float64 `json:"longitude" validate:"required,longitude" example:"127.0398"`
}

// MatchAreaResponse - найденный район и стратегия, которая его дала
type MatchAreaResponse struct {
	Area     *domain.Area `json:"area"`
	Strategy string       `json:"strategy" example:"substring"`
}

// ListAreasResponse - все районы по имени
type ListAreasResponse struct {
	Items []*domain.Area `json:"items"`
	Total int            `json:"total"`
}
