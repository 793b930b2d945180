package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-service/internal/config"
	"github.com/route-service/internal/delivery/http/handler"
)

type tokenResolver map[string]int64

func (r tokenResolver) Resolve(token string) *int64 {
	if id, ok := r[token]; ok {
		return &id
	}
	return nil
}

// newTestServer wires handlers without use cases; only paths rejected before
// reaching a use case are exercised here.
func newTestServer() *Server {
	return newTestServerWithPrefix("/photos")
}

func newTestServerWithPrefix(photoPrefix string) *Server {
	logger := zap.NewNop()
	cfg := &config.Config{
		Server:  config.ServerConfig{CORSOrigins: "http://localhost:3000"},
		Storage: config.StorageConfig{PublicPrefix: photoPrefix, MaxUploadBytes: 1024},
		Auth:    config.AuthConfig{CookieName: "session", InternalToken: "internal"},
	}
	handlers := Handlers{
		Route:  handler.NewRouteHandler(nil, logger),
		Trip:   handler.NewTripHandler(nil, logger),
		Photo:  handler.NewPhotoHandler(nil, logger),
		User:   handler.NewUserHandler(nil, cfg, logger),
		Region: handler.NewRegionHandler(nil, logger),
	}
	return NewServer(cfg, logger, handlers, tokenResolver{"tok": 1}, nil)
}

type errorEnvelope struct {
	Error struct {
		Code    string                 `json:"code"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func call(t *testing.T, s *Server, req *http.Request) (int, errorEnvelope) {
	t.Helper()
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env errorEnvelope
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = json.Unmarshal(data, &env)
	return resp.StatusCode, env
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer tok")
	return req
}

func TestServer_Routing(t *testing.T) {
	s := newTestServer()

	t.Run("health", func(t *testing.T) {
		code, _ := call(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		code, _ := call(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("unknown path", func(t *testing.T) {
		code, env := call(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("non numeric id", func(t *testing.T) {
		code, env := call(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/routes/abc", nil))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("writes require a session", func(t *testing.T) {
		for _, path := range []string{"/api/v1/routes", "/api/v1/routes/1/save", "/api/v1/trips", "/api/v1/trips/1/like"} {
			code, env := call(t, s, httptest.NewRequest(http.MethodPost, path, nil))
			assert.Equal(t, http.StatusUnauthorized, code, path)
			assert.Equal(t, "UNAUTHORIZED", env.Error.Code, path)
		}
		code, _ := call(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/routes/mine", nil))
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("route body validation", func(t *testing.T) {
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/routes",
			strings.NewReader(`{"name":"x","coordinates":[{"lat":1,"lng":2}]}`)))
		req.Header.Set("Content-Type", "application/json")

		code, env := call(t, s, req)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Equal(t, "min=2", env.Error.Details["coordinates"])
	})

	t.Run("privacy flag is required", func(t *testing.T) {
		req := authed(httptest.NewRequest(http.MethodPut, "/api/v1/routes/1/privacy", strings.NewReader(`{}`)))
		req.Header.Set("Content-Type", "application/json")

		code, env := call(t, s, req)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "required", env.Error.Details["is_public"])
	})

	t.Run("trip multipart without trip field", func(t *testing.T) {
		body := "--b\r\nContent-Disposition: form-data; name=\"other\"\r\n\r\nx\r\n--b--\r\n"
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/trips", strings.NewReader(body)))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=b")

		code, env := call(t, s, req)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	})

	t.Run("session creation needs internal token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		code, _ := call(t, s, req)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		resp, err := s.App().Test(httptest.NewRequest(http.MethodDelete, "/api/v1/auth/session", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Set-Cookie"), "session=")
	})
}

func TestServer_PhotoRouteIgnoresTrailingSlash(t *testing.T) {
	for _, prefix := range []string{"/photos", "/photos/"} {
		s := newTestServerWithPrefix(prefix)

		var paths []string
		for _, r := range s.App().GetRoutes(true) {
			if r.Method == http.MethodGet {
				paths = append(paths, r.Path)
			}
		}
		assert.Contains(t, paths, "/photos/*", "prefix %q", prefix)
		assert.NotContains(t, paths, "/photos//*", "prefix %q", prefix)
	}
}
