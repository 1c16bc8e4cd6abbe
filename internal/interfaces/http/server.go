package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/usuarios-api/pkg/logger"
)

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *logger.Logger
	Metrics      *Metrics // opcional
}

// NewApp crea la app Fiber con recover, request id, log de requests y métricas (si se configuran).
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(cfg.Logger),
	})
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(RequestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		app.Use(cfg.Metrics.Middleware())
		app.Get("/metrics", cfg.Metrics.Handler())
	}
	return app
}

// Pinger lo implementan *pgxpool.Pool y *memory.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health responde el estado del servicio y del almacenamiento (503 si no responde).
func Health(service, storage string, p Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "degraded",
				"service": service,
				"storage": storage,
				"error":   err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service, "storage": storage})
	}
}
