package dto

// HealthResponse - состояние зависимостей сервиса
type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Services map[string]string `json:"services"`
}
