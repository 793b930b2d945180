package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/pkg/utils"
)

const viewerKey = "viewer_id"

// InternalTokenHeader - заголовок доверенного auth front-end
const InternalTokenHeader = "X-Internal-Token"

// IdentityResolver превращает сессионный токен в id пользователя; nil - аноним
type IdentityResolver interface {
	Resolve(token string) *int64
}

// Identity resolves the viewer from the session cookie or a Bearer token.
// An invalid token is treated as anonymous, never as an error.
func Identity(resolver IdentityResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			auth := c.Get(fiber.HeaderAuthorization)
			if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
				token = strings.TrimSpace(auth[7:])
			}
		}
		if token != "" {
			if viewer := resolver.Resolve(token); viewer != nil {
				c.Locals(viewerKey, *viewer)
			}
		}
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests with Unauthorized.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ViewerID(c) == nil {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		return c.Next()
	}
}

// InternalToken guards endpoints called only by the trusted auth front-end.
func InternalToken(expected string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get(InternalTokenHeader)
		if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		return c.Next()
	}
}

// ViewerID returns the resolved viewer id or nil for anonymous requests.
func ViewerID(c *fiber.Ctx) *int64 {
	id, ok := c.Locals(viewerKey).(int64)
	if !ok {
		return nil
	}
	return &id
}

// UserID returns the viewer id; only valid behind RequireAuth.
func UserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(viewerKey).(int64)
	return id
}
