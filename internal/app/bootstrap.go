package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database/migration"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the dependency container, applies pending schema
// migrations, and returns a ready-to-listen app plus a cleanup func.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build container: %w", err)
	}

	migCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(migCtx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})
	registerGlobalMiddleware(f, logger)

	registry := routes.NewRegistry(cfg, c.DB, c.Cache, c.Hub, logger)
	registry.Register(f)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
