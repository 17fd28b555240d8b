package router

import (
	"go-booking-api/core/middleware"
	"go-booking-api/modules/eventtype/controller"

	"github.com/labstack/echo/v4"
)

type EventTypeRouter struct {
	controller *controller.EventTypeController
}

func NewEventTypeRouter(ctrl *controller.EventTypeController) *EventTypeRouter {
	return &EventTypeRouter{controller: ctrl}
}

func (r *EventTypeRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	group := api.Group("/event-types", mw.AuthMiddleware())
	group.GET("", r.controller.List)
	group.POST("", r.controller.Create)
	group.PUT("/:id", r.controller.Update)
	group.DELETE("/:id", r.controller.Delete)
	group.POST("/:id/generate", r.controller.Generate)
}
