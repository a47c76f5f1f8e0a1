package v1

import (
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Register wires repositories, usecases, and handlers under /api/v1.
func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	skillRepo := repository.NewPostgresUserSkillRepository(db)
	connRepo := repository.NewPostgresConnectionRepository(db)
	exchangeRepo := repository.NewPostgresExchangeRepository(db)
	chatRepo := repository.NewPostgresChatRepository(db)
	notifRepo := repository.NewPostgresNotificationRepository(db)
	progressRepo := repository.NewPostgresProgressRepository(db)

	notifier := usecase.NewNotifier(notifRepo, hub, logger)

	var discoveryCache usecase.DiscoveryCache
	if redis != nil {
		discoveryCache = redis
	}

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	profileUC := usecase.NewProfileUsecase(userRepo, discoveryCache)
	skillUC := usecase.NewSkillUsecase(skillRepo, discoveryCache)
	discoveryUC := usecase.NewDiscoveryUsecase(userRepo, discoveryCache, cfg.Redis.TTL)
	connUC := usecase.NewConnectionUsecase(connRepo, userRepo, notifier, discoveryCache)
	exchangeUC := usecase.NewExchangeUsecase(exchangeRepo, connRepo, userRepo, chatRepo, notifier, logger)
	chatUC := usecase.NewChatUsecase(chatRepo, notifier)
	notifUC := usecase.NewNotificationUsecase(notifRepo)
	progressUC := usecase.NewProgressUsecase(progressRepo, exchangeRepo, notifier)

	handler.NewAuthHandler(authUC).RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())

	usersGroup := protected.Group("/users")
	handler.NewUserHandler(profileUC).RegisterRoutes(usersGroup)
	handler.NewSkillHandler(skillUC).RegisterRoutes(usersGroup)

	handler.NewDiscoveryHandler(discoveryUC).RegisterRoutes(protected.Group("/discovery"))
	handler.NewConnectionHandler(connUC).RegisterRoutes(protected.Group("/connections"))

	exchangesGroup := protected.Group("/exchanges")
	handler.NewExchangeHandler(exchangeUC).RegisterRoutes(exchangesGroup)
	handler.NewProgressHandler(progressUC).RegisterRoutes(exchangesGroup)

	handler.NewChatHandler(chatUC).RegisterRoutes(protected.Group("/chats"))
	handler.NewNotificationHandler(notifUC).RegisterRoutes(protected.Group("/notifications"))
}
