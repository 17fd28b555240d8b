package controller

import (
	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/event/dto"
	"go-booking-api/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

func NewEventController(eventService service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   eventService,
	}
}

// ListAvailable godoc
// @Summary List open slots
// @Description Unbooked events starting in the future, soonest first
// @Tags Events
// @Param host query string false "Host slug"
// @Success 200 {object} map[string]interface{}
// @Router /events/available [get]
func (controller *EventController) ListAvailable(c echo.Context) error {
	events, err := controller.EventService.ListAvailable(c.Request().Context(), c.QueryParam("host"))
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.OK(c, map[string]any{"events": events})
}

// List godoc
// @Summary List events
// @Description Signed-in hosts get all their events with booking counts; anonymous callers get open slots
// @Tags Events
// @Success 200 {object} map[string]interface{}
// @Router /events [get]
func (controller *EventController) List(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok || c.QueryParams().Has("available") {
		return controller.ListAvailable(c)
	}

	events, err := controller.EventService.ListForHost(c.Request().Context(), hostID)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.OK(c, map[string]any{"events": events})
}

// Create godoc
// @Summary Create an event
// @Tags Events
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /events [post]
func (controller *EventController) Create(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", err.Error())
	}

	event, err := controller.EventService.Create(c.Request().Context(), hostID, &req)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.Created(c, map[string]any{"event": event})
}

// Update godoc
// @Summary Update an event
// @Tags Events
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id} [put]
func (controller *EventController) Update(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	eventID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		return controller.NotFound(errors.ErrNotFound, "Event not found")
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", err.Error())
	}

	event, err := controller.EventService.Update(c.Request().Context(), hostID, eventID, &req)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.OK(c, map[string]any{"event": event})
}

// Delete godoc
// @Summary Delete an event
// @Tags Events
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessFlag
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id} [delete]
func (controller *EventController) Delete(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	eventID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		return controller.NotFound(errors.ErrNotFound, "Event not found")
	}

	if err := controller.EventService.Delete(c.Request().Context(), hostID, eventID); err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.Success(c)
}
