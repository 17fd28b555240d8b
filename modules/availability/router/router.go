package router

import (
	"go-booking-api/core/middleware"
	"go-booking-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	controller *controller.AvailabilityController
}

func NewAvailabilityRouter(ctrl *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{controller: ctrl}
}

func (r *AvailabilityRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	group := api.Group("/availability", mw.AuthMiddleware())
	group.GET("", r.controller.List)
	group.POST("", r.controller.Upsert)
	group.DELETE("/:day", r.controller.Delete)
}
