package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/route-service/internal/config"
	"github.com/route-service/internal/delivery/http/handler"
	"github.com/route-service/internal/delivery/http/middleware"
	"github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/pkg/utils"
)

// HealthChecker проверяет доступность зависимостей для /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers - набор обработчиков API
type Handlers struct {
	Route  *handler.RouteHandler
	Trip   *handler.TripHandler
	Photo  *handler.PhotoHandler
	User   *handler.UserHandler
	Region *handler.RegionHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	identity middleware.IdentityResolver
	health   HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	identity middleware.IdentityResolver,
	health HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Route Service",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxUploadBytes)*10 + 1024*1024,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		identity: identity,
		health:   health,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(middleware.Identity(s.identity, s.config.Auth.CookieName))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Metrics())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	h := s.handlers
	auth := middleware.RequireAuth()

	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Stored photos
	s.app.Get(strings.TrimRight(s.config.Storage.PublicPrefix, "/")+"/*", h.Photo.Serve)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthCheck)

	// Auth & profile
	api.Post("/auth/session", middleware.InternalToken(s.config.Auth.InternalToken), h.User.CreateSession)
	api.Delete("/auth/session", h.User.DeleteSession)
	api.Get("/me", auth, h.User.GetMe)
	api.Patch("/me", auth, h.User.UpdateMe)

	// Regions
	api.Get("/regions", h.Region.ListRegions)
	api.Get("/regions/:key/subregions", h.Region.ListSubregions)

	// Routes; static segments are registered before /:id
	api.Get("/routes", h.Route.ListRoutes)
	api.Get("/routes/mine", auth, h.Route.ListMine)
	api.Get("/routes/saved", auth, h.Route.ListSaved)
	api.Post("/routes", auth, h.Route.CreateRoute)
	api.Get("/routes/:id", h.Route.GetRoute)
	api.Patch("/routes/:id", auth, h.Route.UpdateRoute)
	api.Delete("/routes/:id", auth, h.Route.DeleteRoute)
	api.Put("/routes/:id/privacy", auth, h.Route.SetPrivacy)
	api.Post("/routes/:id/save", auth, h.Route.ToggleSaved)
	api.Post("/routes/:id/photos", auth, h.Photo.UploadRoutePhoto)
	api.Get("/routes/:id/trips", h.Trip.ListForRoute)

	// Trips
	api.Post("/trips", auth, h.Trip.CreateTrip)
	api.Get("/trips/:id", h.Trip.GetTrip)
	api.Post("/trips/:id/like", auth, h.Trip.ToggleLike)
	api.Post("/trips/:id/photos", auth, h.Photo.UploadTripPhoto)
	api.Get("/users/:id/trips", h.Trip.ListForUser)
}

func (s *Server) healthCheck(c *fiber.Ctx) error {
	status := "healthy"
	code := fiber.StatusOK
	if s.health != nil {
		if err := s.health.Health(c.UserContext()); err != nil {
			s.logger.Warn("Health check failed", zap.Error(err))
			status = "unhealthy"
			code = fiber.StatusServiceUnavailable
		}
	}
	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"time":   time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404 роутера, лимит тела и т.п.)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			appErr := errors.New("HTTP_ERROR", e.Message, e.Code)
			if e.Code == fiber.StatusNotFound {
				appErr = errors.New("NOT_FOUND", "Resource not found", e.Code)
			}
			return utils.SendError(c, appErr)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
