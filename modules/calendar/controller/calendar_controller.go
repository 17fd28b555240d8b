package controller

import (
	"time"

	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/core/middleware"
	"go-booking-api/core/utils"
	"go-booking-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarServiceInterface
}

func NewCalendarController(calendarService service.CalendarServiceInterface) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: calendarService,
	}
}

// FreeBusy godoc
// @Summary Busy intervals on the host's Google Calendar
// @Tags Calendar
// @Param start query string false "Unix seconds or RFC 3339, default now"
// @Param end query string false "Unix seconds or RFC 3339, default start + 7 days"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Failure 500 {object} controller.ErrorResponse
// @Router /calendar/availability [get]
func (controller *CalendarController) FreeBusy(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	start, err := optionalTime(c.QueryParam("start"))
	if err != nil {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid start", err.Error())
	}
	end, err := optionalTime(c.QueryParam("end"))
	if err != nil {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid end", err.Error())
	}

	availability, appErr := controller.CalendarService.FreeBusy(c.Request().Context(), hostID, start, end)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.OK(c, map[string]any{"availability": availability})
}

// Sync godoc
// @Summary Read the next 30 days of the host's Google Calendar
// @Tags Calendar
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Failure 500 {object} controller.ErrorResponse
// @Router /calendar/sync [post]
func (controller *CalendarController) Sync(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	events, appErr := controller.CalendarService.Sync(c.Request().Context(), hostID)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.OK(c, map[string]any{"events": events})
}

func optionalTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return utils.ParseTimestamp(raw)
}
