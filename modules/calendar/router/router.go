package router

import (
	"go-booking-api/core/middleware"
	"go-booking-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(ctrl *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{controller: ctrl}
}

func (r *CalendarRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	group := api.Group("/calendar", mw.AuthMiddleware())
	group.GET("/availability", r.controller.FreeBusy)
	group.POST("/sync", r.controller.Sync)
}
