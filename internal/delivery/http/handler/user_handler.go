package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-service/internal/config"
	"github.com/route-service/internal/delivery/http/middleware"
	"github.com/route-service/internal/pkg/utils"
	"github.com/route-service/internal/pkg/validator"
	"github.com/route-service/internal/usecase"
	"github.com/route-service/internal/usecase/dto"
)

const avatarFormField = "avatar"

// UserHandler - сессии и профиль пользователя
type UserHandler struct {
	userUC *usecase.UserUseCase
	cfg    *config.Config
	logger *zap.Logger
}

func NewUserHandler(userUC *usecase.UserUseCase, cfg *config.Config, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userUC: userUC,
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSession - вход по профилю, проверенному auth front-end
// @Summary Создание сессии
// @Description Вызывается доверенным auth front-end с заголовком X-Internal-Token. Ставит сессионную cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param X-Internal-Token header string true "Общий секрет"
// @Param request body dto.CreateSessionRequest true "Профиль"
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/session [post]
func (h *UserHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.userUC.CreateSession(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Cookie(h.sessionCookie(resp.Token, resp.ExpiresAt))
	return utils.SendCreated(c, resp)
}

// DeleteSession
// @Summary Выход
// @Tags Auth
// @Success 204
// @Router /api/v1/auth/session [delete]
func (h *UserHandler) DeleteSession(c *fiber.Ctx) error {
	c.Cookie(h.sessionCookie("", time.Unix(0, 0)))
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMe
// @Summary Текущий пользователь
// @Tags Users
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.UserResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.userUC.GetMe(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// UpdateMe
// @Summary Обновление профиля
// @Tags Users
// @Accept mpfd
// @Produce json
// @Param name formData string true "Имя"
// @Param avatar formData file false "Аватар"
// @Success 200 {object} utils.SuccessResponse{data=dto.UserResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/me [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	var avatar *dto.FileUpload
	if fh, err := c.FormFile(avatarFormField); err == nil {
		upload, err := readUpload(fh)
		if err != nil {
			return utils.SendError(c, err)
		}
		avatar = &upload
	}

	user, err := h.userUC.UpdateProfile(c.UserContext(), middleware.UserID(c), req, avatar)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

func (h *UserHandler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
