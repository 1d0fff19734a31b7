package dto

import (
	"time"

	"github.com/grievance-service/internal/domain"
)

// CreateGrievanceRequest - запрос на создание жалобы
type CreateGrievanceRequest struct {
	Title      string   `json:"title" validate:"required,max=200" example:"가로등 고장"`
	Content    string   `json:"content" validate:"required" example:"역삼역 4번 출구 앞 가로등이 꺼져 있습니다"`
	Category   string   `json:"category" validate:"omitempty,oneof=traffic env safety facility animal admin etc" example:"facility"`
	Latitude   *float64 `json:"latitude" validate:"required,latitude" example:"37.5013"`
	Longitude  *float64 `json:"longitude" validate:"required,longitude" example:"127.0398"`
	Visibility string   `json:"visibility" validate:"omitempty,oneof=public private" example:"private"`
	// Password - только для приватных жалоб
	Password *string `json:"password,omitempty" validate:"omitempty,min=4,max=72"`
}

// UpdateGrievanceRequest - правка жалобы автором; пустые поля не меняются
type UpdateGrievanceRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1"`
	Category *string `json:"category,omitempty" validate:"omitempty,oneof=traffic env safety facility animal admin etc"`
}

// ChangeStatusRequest - смена статуса руководителем района или официальным лицом
type ChangeStatusRequest struct {
	Status      string     `json:"status" validate:"required,oneof=pending in_progress resolved" example:"resolved"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// MaxFeedPage - верхняя граница номера страницы ленты, совпадает с lte в теге Page
const MaxFeedPage = 100000

// ListGrievancesRequest - параметры ленты
type ListGrievancesRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=pending in_progress resolved"`
	Category string `query:"category" validate:"omitempty,oneof=traffic env safety facility animal admin etc"`
	AreaID   int64  `query:"area_id" validate:"omitempty,gt=0"`
	Mine     bool   `query:"mine"`
	Location string `query:"location" validate:"omitempty,max=255"`
	Search   string `query:"search" validate:"omitempty,max=100"`
	Ordering string `query:"ordering" validate:"omitempty,oneof=created_at -created_at updated_at -updated_at like_count -like_count"`
	Page     int    `query:"page" validate:"omitempty,gte=1,lte=100000"`
	PageSize int    `query:"page_size" validate:"omitempty,gte=1"`
}

// NearbyRequest - поиск жалоб в радиусе; RadiusKm=0 означает радиус по умолчанию
type NearbyRequest struct {
	Lat      *float64 `query:"lat" validate:"required,latitude"`
	Lng      *float64 `query:"lng" validate:"required,longitude"`
	RadiusKm float64  `query:"radius" validate:"omitempty,gt=0"`
}

// GrievanceResponse - жалоба с отметкой лайка текущего пользователя
type GrievanceResponse struct {
	*domain.Grievance
	IsLiked bool `json:"is_liked"`
}

// ListGrievancesResponse - страница ленты
type ListGrievancesResponse struct {
	Items    []*domain.Grievance `json:"items"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	HasNext  bool                `json:"has_next"`
}

// NearbyResponse - жалобы в радиусе, от ближних к дальним
type NearbyResponse struct {
	Items     []*domain.NearbyGrievance `json:"items"`
	Count     int                       `json:"count"`
	RadiusKm  float64                   `json:"radius_km"`
	Truncated bool                      `json:"truncated"`
}

// LikeResponse - состояние лайка после переключения
type LikeResponse struct {
	IsLiked   bool `json:"is_liked"`
	LikeCount int  `json:"like_count"`
}
