package server

import (
	"errors"
	"fmt"
	"time"

	"rate-shopper/internal/core/config"
	"rate-shopper/internal/core/logger"
	"rate-shopper/internal/core/metrics"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "rate-shopper/docs/swagger"
)

// RayIDHeader carries the request identifier in and out of the service.
const RayIDHeader = "X-Ray-ID"

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// New creates a new Server instance with configured middleware.
// recorder may be nil, in which case /metrics is not mounted.
func New(cfg *config.AppConfig, recorder *metrics.Recorder) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "rate-shopper",
		ErrorHandler:          errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header:    RayIDHeader,
		Generator: uuid.NewString,
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz" || c.Path() == "/metrics"
		},
	}))

	app.Use(fiberrecover.New(fiberrecover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			logger.Named("server").Error("Recovered from panic",
				zap.String("ray_id", rayID(c)),
				zap.String("path", c.Path()),
				zap.Any("panic", e),
				zap.StackSkip("stack", 3),
			)
		},
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if reg := recorder.Registry(); reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	return &Server{
		App: app,
		cfg: cfg,
	}
}

// errorHandler renders errors that escape a handler as JSON. Only *fiber.Error
// messages reach the client; anything else, including recovered panics, is a 500.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, message = fe.Code, fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"message": message, "ray_id": rayID(c)})
}

func rayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits up to timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	logger.Get().Info("Shutting down server", zap.Duration("timeout", timeout))
	return s.App.ShutdownWithTimeout(timeout)
}
