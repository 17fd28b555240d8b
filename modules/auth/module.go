package auth

import (
	"go-booking-api/core/cache"
	"go-booking-api/core/config"
	"go-booking-api/core/database"
	"go-booking-api/core/middleware"
	"go-booking-api/core/session"
	"go-booking-api/modules/auth/controller"
	"go-booking-api/modules/auth/repository"
	"go-booking-api/modules/auth/router"
	"go-booking-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(api *echo.Group, db database.IDatabase, c cache.Cache, codec *session.Codec, mw *middleware.Middleware, cfg *config.Config) *service.AuthService {
	repo := repository.NewAuthRepository(db)
	authService := service.NewAuthService(repo, c, codec, service.GoogleOAuthConfig(cfg.GoogleAPI))
	ctrl := controller.NewAuthController(authService, controller.CookieOptions{
		Name:   cfg.Session.CookieName,
		Secure: cfg.SecureCookies(),
	})

	router.NewAuthRouter(ctrl).Register(api, mw)
	return authService
}
