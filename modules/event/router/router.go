package router

import (
	"go-booking-api/core/middleware"
	"go-booking-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(ctrl *controller.EventController) *EventRouter {
	return &EventRouter{controller: ctrl}
}

func (r *EventRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	group := api.Group("/events")
	group.GET("", r.controller.List)
	group.GET("/available", r.controller.ListAvailable)

	group.POST("", r.controller.Create, mw.AuthMiddleware())
	group.PUT("/:id", r.controller.Update, mw.AuthMiddleware())
	group.DELETE("/:id", r.controller.Delete, mw.AuthMiddleware())
}
