package availability

import (
	"go-booking-api/core/database"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/availability/controller"
	"go-booking-api/modules/availability/repository"
	"go-booking-api/modules/availability/router"
	"go-booking-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

func Init(api *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.AvailabilityService {
	repo := repository.NewAvailabilityRepository(db)
	availabilityService := service.NewAvailabilityService(repo)
	ctrl := controller.NewAvailabilityController(availabilityService)

	router.NewAvailabilityRouter(ctrl).Register(api, mw)
	return availabilityService
}
