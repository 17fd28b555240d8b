package event

import (
	"go-booking-api/core/database"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/event/controller"
	"go-booking-api/modules/event/repository"
	"go-booking-api/modules/event/router"
	"go-booking-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

func Init(api *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.EventService {
	repo := repository.NewEventRepository(db)
	eventService := service.NewEventService(repo)
	ctrl := controller.NewEventController(eventService)

	router.NewEventRouter(ctrl).Register(api, mw)
	return eventService
}
