package eventtype

import (
	"go-booking-api/core/database"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/eventtype/controller"
	"go-booking-api/modules/eventtype/repository"
	"go-booking-api/modules/eventtype/router"
	"go-booking-api/modules/eventtype/service"

	"github.com/labstack/echo/v4"
)

func Init(api *echo.Group, db database.IDatabase, mw *middleware.Middleware, windows service.WindowSource, events service.SlotWriter) *service.EventTypeService {
	repo := repository.NewEventTypeRepository(db)
	eventTypeService := service.NewEventTypeService(repo, windows, events)
	ctrl := controller.NewEventTypeController(eventTypeService)

	router.NewEventTypeRouter(ctrl).Register(api, mw)
	return eventTypeService
}
