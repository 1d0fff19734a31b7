package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/config"
	"github.com/grievance-service/internal/delivery/http/handler"
	"github.com/grievance-service/internal/delivery/http/middleware"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	grievanceHandler *handler.GrievanceHandler
	areaHandler      *handler.AreaHandler
	healthHandler    *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	grievanceHandler *handler.GrievanceHandler,
	areaHandler *handler.AreaHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Grievance Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		grievanceHandler: grievanceHandler,
		areaHandler:      areaHandler,
		healthHandler:    healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")
	api.Get("/health", s.healthHandler.Health)

	v := api.Group("", middleware.Viewer())

	// /nearby регистрируется раньше /:id
	grievances := v.Group("/grievances")
	grievances.Post("/", s.grievanceHandler.Create)
	grievances.Get("/", s.grievanceHandler.List)
	grievances.Get("/nearby", s.grievanceHandler.Nearby)
	grievances.Get("/:id", s.grievanceHandler.Get)
	grievances.Put("/:id", s.grievanceHandler.Update)
	grievances.Delete("/:id", s.grievanceHandler.Delete)
	grievances.Patch("/:id/status", s.grievanceHandler.ChangeStatus)
	grievances.Patch("/:id/like", s.grievanceHandler.ToggleLike)

	areas := v.Group("/areas")
	areas.Get("/", s.areaHandler.List)
	areas.Post("/match", s.areaHandler.Match)
	areas.Get("/:id", s.areaHandler.Get)

	v.Post("/locations/resolve", s.areaHandler.ResolveLocation)
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

// customErrorHandler - ошибки, не обработанные хендлерами (404 маршрута, 405, паника)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			appErr := errors.New(fiberErrorCode(fe.Code), fe.Message, fe.Code)
			return utils.SendError(c, appErr)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}

func fiberErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	}
	if status >= fiber.StatusInternalServerError {
		return errors.ErrInternalServer.Code
	}
	return errors.CodeInvalidArgument
}
