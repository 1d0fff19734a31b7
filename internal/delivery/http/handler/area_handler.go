package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/pkg/utils"
	"github.com/grievance-service/internal/usecase/dto"
)

// AreaService - чтение районов, диагностика сопоставления и обратное геокодирование
type AreaService interface {
	List(ctx context.Context) (*dto.ListAreasResponse, error)
	Get(ctx context.Context, id int64) (*domain.Area, error)
	Match(ctx context.Context, req dto.MatchAreaRequest) (*dto.MatchAreaResponse, error)
	Resolve(ctx context.Context, req dto.ResolveLocationRequest) (*dto.ResolveLocationResponse, error)
}

// AreaHandler - обработчик запросов к районам и геокодированию
type AreaHandler struct {
	areaUC AreaService
	logger *zap.Logger
}

// NewAreaHandler - создание нового AreaHandler
func NewAreaHandler(areaUC AreaService, logger *zap.Logger) *AreaHandler {
	return &AreaHandler{
		areaUC: areaUC,
		logger: logger,
	}
}

// List godoc
// @Summary Список районов
// @Tags Areas
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ListAreasResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/areas [get]
func (h *AreaHandler) List(c *fiber.Ctx) error {
	result, err := h.areaUC.List(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Get godoc
// @Summary Район по ID
// @Tags Areas
// @Produce json
// @Param id path int true "ID района"
// @Success 200 {object} utils.SuccessResponse{data=domain.Area}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/areas/{id} [get]
func (h *AreaHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendError(c, errors.ErrInvalidArgument.WithMessage("Invalid area id"))
	}

	area, err := h.areaUC.Get(c.UserContext(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, area, nil)
}

// Match godoc
// @Summary Диагностика сопоставления района
// @Description Показывает район и стратегию (exact, substring, nearest, fallback) для имени места и координаты
// @Tags Areas
// @Accept json
// @Produce json
// @Param request body dto.MatchAreaRequest true "Имя места и координата"
// @Success 200 {object} utils.SuccessResponse{data=dto.MatchAreaResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/areas/match [post]
func (h *AreaHandler) Match(c *fiber.Ctx) error {
	var req dto.MatchAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.areaUC.Match(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ResolveLocation godoc
// @Summary Обратное геокодирование
// @Description Имя места для координаты; при недоступности провайдера - строка "lat, lon"
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body dto.ResolveLocationRequest true "Координата"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResolveLocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/locations/resolve [post]
func (h *AreaHandler) ResolveLocation(c *fiber.Ctx) error {
	var req dto.ResolveLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.areaUC.Resolve(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
