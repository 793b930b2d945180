package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-service/internal/delivery/http/middleware"
	"github.com/route-service/internal/pkg/utils"
	"github.com/route-service/internal/pkg/validator"
	"github.com/route-service/internal/usecase"
	"github.com/route-service/internal/usecase/dto"
)

// RouteHandler - обработчик запросов к маршрутам
type RouteHandler struct {
	routeUC *usecase.RouteUseCase
	logger  *zap.Logger
}

func NewRouteHandler(routeUC *usecase.RouteUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// ListRoutes - список видимых маршрутов
// @Summary Список маршрутов
// @Description Маршруты, видимые текущему пользователю: системные, публичные и собственные. Фильтры по региону, подрегиону и подстроке.
// @Tags Routes
// @Produce json
// @Param region query string false "Ключ региона"
// @Param subregion query string false "Ключ подрегиона"
// @Param q query string false "Подстрока в названии или описании"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.RouteView}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/routes [get]
func (h *RouteHandler) ListRoutes(c *fiber.Ctx) error {
	var req dto.ListRoutesRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	routes, err := h.routeUC.ListRoutes(c.UserContext(), req, middleware.ViewerID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, routes, &utils.Meta{Total: len(routes)})
}

// ListMine - маршруты текущего пользователя
// @Summary Мои маршруты
// @Tags Routes
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.RouteView}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/routes/mine [get]
func (h *RouteHandler) ListMine(c *fiber.Ctx) error {
	routes, err := h.routeUC.ListMine(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, routes, &utils.Meta{Total: len(routes)})
}

// ListSaved - сохраненные маршруты
// @Summary Сохраненные маршруты
// @Tags Routes
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.RouteView}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/routes/saved [get]
func (h *RouteHandler) ListSaved(c *fiber.Ctx) error {
	routes, err := h.routeUC.ListSaved(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, routes, &utils.Meta{Total: len(routes)})
}

// GetRoute
// @Summary Маршрут по id
// @Tags Routes
// @Produce json
// @Param id path int true "ID маршрута"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteView}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id} [get]
func (h *RouteHandler) GetRoute(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	route, err := h.routeUC.GetRoute(c.UserContext(), id, middleware.ViewerID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, route, nil)
}

// CreateRoute
// @Summary Создание маршрута
// @Description Расстояние и время в пути считаются синхронно; при недоступности провайдера остаются пустыми.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.CreateRouteRequest true "Маршрут"
// @Success 201 {object} utils.SuccessResponse{data=dto.CreateRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/routes [post]
func (h *RouteHandler) CreateRoute(c *fiber.Ctx) error {
	var req dto.CreateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.routeUC.CreateRoute(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, resp)
}

// UpdateRoute
// @Summary Редактирование маршрута
// @Description Изменение координат сбрасывает метрики и ставит их пересчет в очередь.
// @Tags Routes
// @Accept json
// @Produce json
// @Param id path int true "ID маршрута"
// @Param request body dto.UpdateRouteRequest true "Изменения"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteView}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id} [patch]
func (h *RouteHandler) UpdateRoute(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	route, err := h.routeUC.UpdateRoute(c.UserContext(), id, middleware.UserID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, route, nil)
}

// DeleteRoute
// @Summary Удаление маршрута
// @Tags Routes
// @Param id path int true "ID маршрута"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id} [delete]
func (h *RouteHandler) DeleteRoute(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.routeUC.DeleteRoute(c.UserContext(), id, middleware.UserID(c)); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPrivacy
// @Summary Смена приватности маршрута
// @Tags Routes
// @Accept json
// @Produce json
// @Param id path int true "ID маршрута"
// @Param request body dto.SetPrivacyRequest true "Флаг публичности"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id}/privacy [put]
func (h *RouteHandler) SetPrivacy(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SetPrivacyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.routeUC.SetRoutePrivacy(c.UserContext(), id, middleware.UserID(c), *req.IsPublic); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"id": id, "is_public": *req.IsPublic}, nil)
}

// ToggleSaved
// @Summary Сохранить или убрать маршрут из сохраненных
// @Tags Routes
// @Produce json
// @Param id path int true "ID маршрута"
// @Success 200 {object} utils.SuccessResponse{data=dto.ToggleResult}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id}/save [post]
func (h *RouteHandler) ToggleSaved(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.routeUC.ToggleSaved(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
