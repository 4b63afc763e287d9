package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/waste-analytics/internal/config"
	"github.com/waste-analytics/internal/delivery/http/handler"
	"github.com/waste-analytics/internal/delivery/http/middleware"
	"go.uber.org/zap"

	_ "github.com/waste-analytics/docs"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	datasetHandler   *handler.DatasetHandler
	dashboardHandler *handler.DashboardHandler
	exportHandler    *handler.ExportHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	datasetHandler *handler.DatasetHandler,
	dashboardHandler *handler.DashboardHandler,
	exportHandler *handler.ExportHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Waste Analytics",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		datasetHandler:   datasetHandler,
		dashboardHandler: dashboardHandler,
		exportHandler:    exportHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.datasetHandler.Health)

	// Dataset
	api.Get("/dataset", s.datasetHandler.GetInfo)
	api.Get("/dataset/summary", s.datasetHandler.GetSummary)
	api.Get("/dataset/options", s.datasetHandler.GetOptions)
	api.Post("/dataset/reload", s.datasetHandler.Reload)

	// Views
	views := api.Group("/views")
	views.Get("/overview", s.dashboardHandler.Overview)
	views.Get("/awareness", s.dashboardHandler.Awareness)
	views.Get("/cost", s.dashboardHandler.Cost)
	views.Get("/efficiency", s.dashboardHandler.Efficiency)
	views.Get("/landfill", s.dashboardHandler.Landfill)
	views.Get("/geographic", s.dashboardHandler.Geographic)

	// Records table
	api.Get("/records", s.dashboardHandler.Records)
	api.Get("/records/export", s.exportHandler.ExportRecords)
}

// App - доступ к fiber.App (тесты через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
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

// customErrorHandler - ошибки, не обработанные хендлерами (404, 405, паники)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			} else if code < fiber.StatusInternalServerError {
				errCode = "INVALID_REQUEST"
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
