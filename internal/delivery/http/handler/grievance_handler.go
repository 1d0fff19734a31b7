package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/delivery/http/middleware"
	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/pkg/utils"
	"github.com/grievance-service/internal/usecase/dto"
)

// GrievanceService - операции над жалобами, которые нужны HTTP слою
type GrievanceService interface {
	Create(ctx context.Context, viewer domain.Viewer, req dto.CreateGrievanceRequest) (*dto.GrievanceResponse, error)
	Get(ctx context.Context, viewer domain.Viewer, id uuid.UUID, password *string) (*dto.GrievanceResponse, error)
	List(ctx context.Context, viewer domain.Viewer, req dto.ListGrievancesRequest) (*dto.ListGrievancesResponse, error)
	Nearby(ctx context.Context, viewer domain.Viewer, req dto.NearbyRequest) (*dto.NearbyResponse, error)
	ChangeStatus(ctx context.Context, viewer domain.Viewer, id uuid.UUID, req dto.ChangeStatusRequest) (*domain.Grievance, error)
	Update(ctx context.Context, viewer domain.Viewer, id uuid.UUID, req dto.UpdateGrievanceRequest) (*domain.Grievance, error)
	Delete(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error
	ToggleLike(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (*dto.LikeResponse, error)
}

// GrievanceHandler - обработчик запросов к жалобам
type GrievanceHandler struct {
	grievanceUC GrievanceService
	logger      *zap.Logger
}

// NewGrievanceHandler - создание нового GrievanceHandler
func NewGrievanceHandler(grievanceUC GrievanceService, logger *zap.Logger) *GrievanceHandler {
	return &GrievanceHandler{
		grievanceUC: grievanceUC,
		logger:      logger,
	}
}

// Create godoc
// @Summary Создание жалобы
// @Description Имя места определяется обратным геокодированием, район - сопоставлением. Пароль допустим только для приватной жалобы.
// @Tags Grievances
// @Accept json
// @Produce json
// @Param X-User-ID header int false "ID пользователя (шлюз аутентификации)"
// @Param request body dto.CreateGrievanceRequest true "Жалоба"
// @Success 201 {object} utils.SuccessResponse{data=dto.GrievanceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/grievances [post]
func (h *GrievanceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.grievanceUC.Create(c.UserContext(), middleware.ViewerFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}

// Get godoc
// @Summary Получение жалобы
// @Description Приватная жалоба видна автору, руководителю района и подтверждённым админам/политикам, а также по паролю
// @Tags Grievances
// @Produce json
// @Param id path string true "ID жалобы (UUID)"
// @Param X-User-ID header int false "ID пользователя"
// @Param X-Grievance-Password header string false "Пароль приватной жалобы"
// @Success 200 {object} utils.SuccessResponse{data=dto.GrievanceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/grievances/{id} [get]
func (h *GrievanceHandler) Get(c *fiber.Ctx) error {
	id, err := grievanceID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	// пустой заголовок равнозначен его отсутствию
	var password *string
	if raw := c.Get(middleware.HeaderGrievancePassword); raw != "" {
		password = &raw
	}

	result, err := h.grievanceUC.Get(c.UserContext(), middleware.ViewerFrom(c), id, password)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// List godoc
// @Summary Лента жалоб
// @Description Жалобы, видимые текущему пользователю; по умолчанию от новых к старым
// @Tags Grievances
// @Produce json
// @Param status query string false "pending, in_progress, resolved"
// @Param category query string false "Категория"
// @Param area_id query int false "ID района"
// @Param mine query bool false "Только свои жалобы"
// @Param location query string false "Точное название места"
// @Param search query string false "Поиск по заголовку, тексту и месту"
// @Param ordering query string false "created_at, updated_at, like_count; префикс - для убывания" default(-created_at)
// @Param page query int false "Страница" default(1)
// @Param page_size query int false "Размер страницы" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.ListGrievancesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/grievances [get]
func (h *GrievanceHandler) List(c *fiber.Ctx) error {
	var req dto.ListGrievancesRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid query parameters"))
	}

	result, err := h.grievanceUC.List(c.UserContext(), middleware.ViewerFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.PageSize,
		HasNext: result.HasNext,
	})
}

// Nearby godoc
// @Summary Жалобы рядом
// @Description Видимые жалобы в радиусе от точки, от ближних к дальним, с расстоянием в метрах
// @Tags Grievances
// @Produce json
// @Param lat query number true "Широта"
// @Param lng query number true "Долгота"
// @Param radius query number false "Радиус в км" default(5)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/grievances/nearby [get]
func (h *GrievanceHandler) Nearby(c *fiber.Ctx) error {
	var req dto.NearbyRequest
	var err error

	if req.Lat, err = queryFloat(c, "lat"); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	if req.Lng, err = queryFloat(c, "lng"); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	radius, err := queryFloat(c, "radius")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRadius)
	}
	if radius != nil {
		if *radius == 0 {
			return utils.SendError(c, errors.ErrInvalidRadius)
		}
		req.RadiusKm = *radius
	}

	result, err := h.grievanceUC.Nearby(c.UserContext(), middleware.ViewerFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Count})
}

// ChangeStatus godoc
// @Summary Смена статуса жалобы
// @Description Доступно руководителю района и подтверждённым админам/политикам; автору - нет
// @Tags Grievances
// @Accept json
// @Produce json
// @Param id path string true "ID жалобы (UUID)"
// @Param request body dto.ChangeStatusRequest true "Новый статус"
// @Success 200 {object} utils.SuccessResponse{data=domain.Grievance}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/grievances/{id}/status [patch]
func (h *GrievanceHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := grievanceID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.grievanceUC.ChangeStatus(c.UserContext(), middleware.ViewerFrom(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Update godoc
// @Summary Правка жалобы автором
// @Tags Grievances
// @Accept json
// @Produce json
// @Param id path string true "ID жалобы (UUID)"
// @Param request body dto.UpdateGrievanceRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.Grievance}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/grievances/{id} [put]
func (h *GrievanceHandler) Update(c *fiber.Ctx) error {
	id, err := grievanceID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.grievanceUC.Update(c.UserContext(), middleware.ViewerFrom(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Delete godoc
// @Summary Удаление жалобы автором
// @Tags Grievances
// @Param id path string true "ID жалобы (UUID)"
// @Success 204
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/grievances/{id} [delete]
func (h *GrievanceHandler) Delete(c *fiber.Ctx) error {
	id, err := grievanceID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.grievanceUC.Delete(c.UserContext(), middleware.ViewerFrom(c), id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike godoc
// @Summary Лайк / снятие лайка
// @Tags Grievances
// @Produce json
// @Param id path string true "ID жалобы (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.LikeResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/grievances/{id}/like [patch]
func (h *GrievanceHandler) ToggleLike(c *fiber.Ctx) error {
	id, err := grievanceID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.grievanceUC.ToggleLike(c.UserContext(), middleware.ViewerFrom(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func grievanceID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument.WithMessage("Invalid grievance id")
	}
	return id, nil
}

// queryFloat - nil, если параметр не передан
func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
