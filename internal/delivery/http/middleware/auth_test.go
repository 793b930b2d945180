package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-service/internal/delivery/http/middleware"
)

type staticResolver map[string]int64

func (r staticResolver) Resolve(token string) *int64 {
	id, ok := r[token]
	if !ok {
		return nil
	}
	return &id
}

func newIdentityApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.Identity(staticResolver{"good": 7}, "session"))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		viewer := middleware.ViewerID(c)
		if viewer == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(strconv.FormatInt(*viewer, 10))
	})
	app.Get("/private", middleware.RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatInt(middleware.UserID(c), 10))
	})
	app.Post("/internal", middleware.InternalToken("s3cret"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestIdentity(t *testing.T) {
	app := newIdentityApp()

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Cookie", "session=good")

		code, body := do(t, app, req)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "7", body)
	})

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer good")

		_, body := do(t, app, req)
		assert.Equal(t, "7", body)
	})

	t.Run("invalid token is anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer forged")

		code, body := do(t, app, req)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "anonymous", body)
	})

	t.Run("no credentials", func(t *testing.T) {
		_, body := do(t, app, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		assert.Equal(t, "anonymous", body)
	})
}

func TestRequireAuth(t *testing.T) {
	app := newIdentityApp()

	code, body := do(t, app, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Contains(t, body, "UNAUTHORIZED")

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Cookie", "session=good")
	code, body = do(t, app, req)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "7", body)
}

func TestInternalToken(t *testing.T) {
	app := newIdentityApp()

	code, _ := do(t, app, httptest.NewRequest(http.MethodPost, "/internal", nil))
	assert.Equal(t, http.StatusUnauthorized, code)

	req := httptest.NewRequest(http.MethodPost, "/internal", nil)
	req.Header.Set(middleware.InternalTokenHeader, "wrong")
	code, _ = do(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, code)

	req = httptest.NewRequest(http.MethodPost, "/internal", nil)
	req.Header.Set(middleware.InternalTokenHeader, "s3cret")
	code, body := do(t, app, req)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}
