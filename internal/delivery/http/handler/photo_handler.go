package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-service/internal/delivery/http/middleware"
	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/pkg/utils"
	"github.com/route-service/internal/usecase"
	"github.com/route-service/internal/usecase/dto"
)

const (
	photoFormField    = "photo"
	photoCacheControl = "public, max-age=31536000, immutable"
)

// PhotoHandler - загрузка и выдача фотографий
type PhotoHandler struct {
	photoUC *usecase.PhotoUseCase
	logger  *zap.Logger
}

func NewPhotoHandler(photoUC *usecase.PhotoUseCase, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoUC: photoUC,
		logger:  logger,
	}
}

// UploadRoutePhoto
// @Summary Фото к маршруту
// @Tags Photos
// @Accept mpfd
// @Produce json
// @Param id path int true "ID маршрута"
// @Param photo formData file true "Изображение"
// @Success 201 {object} utils.SuccessResponse{data=dto.PhotoUploadResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id}/photos [post]
func (h *PhotoHandler) UploadRoutePhoto(c *fiber.Ctx) error {
	return h.upload(c, domain.PhotoParentRoute)
}

// UploadTripPhoto
// @Summary Фото к поездке
// @Tags Photos
// @Accept mpfd
// @Produce json
// @Param id path int true "ID поездки"
// @Param photo formData file true "Изображение"
// @Success 201 {object} utils.SuccessResponse{data=dto.PhotoUploadResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id}/photos [post]
func (h *PhotoHandler) UploadTripPhoto(c *fiber.Ctx) error {
	return h.upload(c, domain.PhotoParentTrip)
}

func (h *PhotoHandler) upload(c *fiber.Ctx, parent domain.PhotoParent) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	fh, err := c.FormFile(photoFormField)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidUpload.Wrap(err))
	}
	file, err := readUpload(fh)
	if err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.photoUC.Ingest(c.UserContext(), dto.PhotoUpload{
		Parent:     parent,
		ParentID:   id,
		UploaderID: middleware.UserID(c),
		File:       file,
	})
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, resp)
}

// Serve отдает сохраненный блоб по ключу
func (h *PhotoHandler) Serve(c *fiber.Ctx) error {
	blob, err := h.photoUC.Open(c.UserContext(), c.Params("*"))
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, blob.ContentType)
	c.Set(fiber.HeaderCacheControl, photoCacheControl)
	return c.Send(blob.Data)
}
