package calendar

import (
	"go-booking-api/core/database"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/calendar/controller"
	"go-booking-api/modules/calendar/repository"
	"go-booking-api/modules/calendar/router"
	"go-booking-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
)

// Init registers the calendar routes. oauthConfig is nil when Google
// credentials are absent.
func Init(api *echo.Group, db database.IDatabase, mw *middleware.Middleware, oauthConfig *oauth2.Config) *service.CalendarService {
	repo := repository.NewCalendarRepository(db)
	calendarService := service.NewCalendarService(repo, oauthConfig)
	ctrl := controller.NewCalendarController(calendarService)

	router.NewCalendarRouter(ctrl).Register(api, mw)
	return calendarService
}
