package booking

import (
	"go-booking-api/core/database"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/booking/controller"
	"go-booking-api/modules/booking/repository"
	"go-booking-api/modules/booking/router"
	"go-booking-api/modules/booking/service"
	notificationService "go-booking-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(api *echo.Group, db database.IDatabase, mw *middleware.Middleware, limiter *middleware.RateLimiter, dispatcher notificationService.Dispatcher) *service.BookingService {
	repo := repository.NewBookingRepository(db)
	bookingService := service.NewBookingService(repo, dispatcher)
	ctrl := controller.NewBookingController(bookingService)

	router.NewBookingRouter(ctrl, limiter).Register(api, mw)
	return bookingService
}
