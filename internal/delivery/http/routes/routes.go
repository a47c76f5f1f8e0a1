package routes

import (
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	v1 "skillswap/internal/delivery/http/routes/v1"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	redis  *cache.Redis
	hub    *ws.Hub
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, hub *ws.Hub, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{cfg: cfg, db: db, redis: redis, hub: hub, logger: logger}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	var cachePinger handler.Pinger
	if r.redis != nil {
		cachePinger = r.redis
	}
	handler.NewHealthHandler(r.db, cachePinger).RegisterRoutes(app)

	jwtSvc := jwt.NewHMACService(
		r.cfg.JWT.AccessSecret,
		r.cfg.JWT.RefreshSecret,
		r.cfg.JWT.AccessExpiresIn,
		r.cfg.JWT.RefreshExpiresIn,
	)
	app.Get("/ws/notifications", ws.NewHandler(r.hub, jwtSvc, r.logger).HandleNotificationsWS)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.cfg, r.db, r.redis, r.hub, r.logger)
}
