package router

import (
	"go-booking-api/core/middleware"
	"go-booking-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(ctrl *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: ctrl}
}

func (r *AuthRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	group := api.Group("/auth")
	group.GET("/google", r.controller.GoogleAuth)
	group.GET("/google/login", r.controller.GoogleAuth)
	group.GET("/google/callback", r.controller.GoogleCallback)
	group.GET("/me", r.controller.Me, mw.AuthMiddleware())
	group.POST("/logout", r.controller.Logout, mw.AuthMiddleware())
}
