package dto

// ResolveLocationRequest - координата для обратного геокодирования
type ResolveLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude" example:"37.5013"`
	Longitude *float64 `json:"longitude" validate:"required,longitude" example:"127.0398"`
}

// ResolveLocationResponse - имя места и его источник (cache, provider, fallback)
type ResolveLocationResponse struct {
	PlaceName string  `json:"place_name" example:"강남구"`
	Source    string  `json:"source" example:"cache"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
