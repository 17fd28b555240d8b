package router

import (
	"go-booking-api/core/middleware"
	"go-booking-api/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	controller *controller.BookingController
	limiter    *middleware.RateLimiter
}

// NewBookingRouter registers the booking routes. limiter guards the public
// create endpoint and may be nil.
func NewBookingRouter(ctrl *controller.BookingController, limiter *middleware.RateLimiter) *BookingRouter {
	return &BookingRouter{controller: ctrl, limiter: limiter}
}

func (r *BookingRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	group := api.Group("/bookings")

	if r.limiter != nil {
		group.POST("", r.controller.Create, r.limiter.Middleware())
	} else {
		group.POST("", r.controller.Create)
	}
	group.GET("", r.controller.List, mw.AuthMiddleware())
	group.DELETE("/:id", r.controller.Cancel, mw.AuthMiddleware())
}
