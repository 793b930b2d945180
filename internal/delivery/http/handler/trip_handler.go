package handler

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-service/internal/delivery/http/middleware"
	"github.com/route-service/internal/pkg/utils"
	"github.com/route-service/internal/pkg/validator"
	"github.com/route-service/internal/usecase"
	"github.com/route-service/internal/usecase/dto"
)

const (
	tripFormField   = "trip"
	photosFormField = "photos"
)

// TripHandler - обработчик запросов к поездкам
type TripHandler struct {
	tripUC *usecase.TripUseCase
	logger *zap.Logger
}

func NewTripHandler(tripUC *usecase.TripUseCase, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripUC: tripUC,
		logger: logger,
	}
}

// CreateTrip - создание поездки с фотографиями
// @Summary Создание поездки
// @Description multipart/form-data: поле trip (JSON dto.CreateTripRequest) и файлы photos. Допускается и чистый JSON без фото.
// @Description Если загрузка фото не удалась, поездка остается созданной, а ее id возвращается в details.trip_id.
// @Tags Trips
// @Accept mpfd
// @Accept json
// @Produce json
// @Param trip formData string true "JSON поездки"
// @Param photos formData file false "Фотографии"
// @Success 201 {object} utils.SuccessResponse{data=dto.CreateTripResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/trips [post]
func (h *TripHandler) CreateTrip(c *fiber.Ctx) error {
	var (
		req   dto.CreateTripRequest
		files []dto.FileUpload
	)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return utils.SendError(c, invalidBody(err))
		}

		raw := form.Value[tripFormField]
		if len(raw) == 0 {
			return utils.SendError(c, invalidBody(fiber.ErrBadRequest))
		}
		if err := json.Unmarshal([]byte(raw[0]), &req); err != nil {
			return utils.SendError(c, invalidBody(err))
		}

		for _, fh := range form.File[photosFormField] {
			upload, err := readUpload(fh)
			if err != nil {
				return utils.SendError(c, err)
			}
			files = append(files, upload)
		}
	} else if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.tripUC.CreateTrip(c.UserContext(), middleware.UserID(c), req, files)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, resp)
}

// GetTrip
// @Summary Поездка по id
// @Tags Trips
// @Produce json
// @Param id path int true "ID поездки"
// @Success 200 {object} utils.SuccessResponse{data=dto.TripView}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id} [get]
func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	trip, err := h.tripUC.GetTrip(c.UserContext(), id, middleware.ViewerID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trip, nil)
}

// ListForRoute
// @Summary Поездки по маршруту
// @Tags Trips
// @Produce json
// @Param id path int true "ID маршрута"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.TripView}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id}/trips [get]
func (h *TripHandler) ListForRoute(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	trips, err := h.tripUC.ListTripsForRoute(c.UserContext(), id, middleware.ViewerID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trips, &utils.Meta{Total: len(trips)})
}

// ListForUser
// @Summary Поездки пользователя
// @Tags Trips
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.TripView}
// @Router /api/v1/users/{id}/trips [get]
func (h *TripHandler) ListForUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	trips, err := h.tripUC.ListTripsByUser(c.UserContext(), id, middleware.ViewerID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trips, &utils.Meta{Total: len(trips)})
}

// ToggleLike
// @Summary Лайк поездки
// @Tags Trips
// @Produce json
// @Param id path int true "ID поездки"
// @Success 200 {object} utils.SuccessResponse{data=dto.ToggleResult}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id}/like [post]
func (h *TripHandler) ToggleLike(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.tripUC.ToggleTripLike(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
