package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-service/internal/pkg/utils"
	"github.com/route-service/internal/usecase"
)

// RegionHandler - справочник регионов
type RegionHandler struct {
	regionUC *usecase.RegionUseCase
	logger   *zap.Logger
}

func NewRegionHandler(regionUC *usecase.RegionUseCase, logger *zap.Logger) *RegionHandler {
	return &RegionHandler{
		regionUC: regionUC,
		logger:   logger,
	}
}

// ListRegions
// @Summary Список регионов
// @Tags Regions
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Region}
// @Router /api/v1/regions [get]
func (h *RegionHandler) ListRegions(c *fiber.Ctx) error {
	regions, err := h.regionUC.ListRegions(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, regions, &utils.Meta{Total: len(regions)})
}

// ListSubregions
// @Summary Подрегионы региона
// @Tags Regions
// @Produce json
// @Param key path string true "Ключ региона"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Subregion}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/regions/{key}/subregions [get]
func (h *RegionHandler) ListSubregions(c *fiber.Ctx) error {
	subregions, err := h.regionUC.ListSubregions(c.UserContext(), c.Params("key"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, subregions, &utils.Meta{Total: len(subregions)})
}
