package controller

import (
	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/eventtype/dto"
	"go-booking-api/modules/eventtype/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventTypeController struct {
	controller.BaseController
	EventTypeService service.EventTypeServiceInterface
}

func NewEventTypeController(eventTypeService service.EventTypeServiceInterface) *EventTypeController {
	return &EventTypeController{
		BaseController:   controller.NewBaseController(),
		EventTypeService: eventTypeService,
	}
}

func (controller *EventTypeController) hostAndID(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, controller.NotFound(errors.ErrNotFound, "Event type not found")
	}
	return hostID, id, nil
}

// List godoc
// @Summary List event types
// @Tags EventTypes
// @Success 200 {object} map[string]interface{}
// @Router /event-types [get]
func (controller *EventTypeController) List(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	rows, err := controller.EventTypeService.List(c.Request().Context(), hostID)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.OK(c, map[string]any{"event_types": rows})
}

// Create godoc
// @Summary Create an event type
// @Tags EventTypes
// @Param request body dto.CreateEventTypeRequest true "Event type"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} controller.ErrorResponse
// @Router /event-types [post]
func (controller *EventTypeController) Create(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	var req dto.CreateEventTypeRequest
	if err := c.Bind(&req); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", err.Error())
	}

	created, err := controller.EventTypeService.Create(c.Request().Context(), hostID, &req)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.Created(c, map[string]any{"event_type": created})
}

// Update godoc
// @Summary Update an event type
// @Tags EventTypes
// @Param id path string true "Event type ID"
// @Param request body dto.UpdateEventTypeRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} controller.ErrorResponse
// @Router /event-types/{id} [put]
func (controller *EventTypeController) Update(c echo.Context) error {
	hostID, id, httpErr := controller.hostAndID(c)
	if httpErr != nil {
		return httpErr
	}

	var req dto.UpdateEventTypeRequest
	if err := c.Bind(&req); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", err.Error())
	}

	updated, err := controller.EventTypeService.Update(c.Request().Context(), hostID, id, &req)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.OK(c, map[string]any{"event_type": updated})
}

// Delete godoc
// @Summary Delete an event type
// @Tags EventTypes
// @Param id path string true "Event type ID"
// @Success 200 {object} controller.SuccessFlag
// @Router /event-types/{id} [delete]
func (controller *EventTypeController) Delete(c echo.Context) error {
	hostID, id, httpErr := controller.hostAndID(c)
	if httpErr != nil {
		return httpErr
	}

	if err := controller.EventTypeService.Delete(c.Request().Context(), hostID, id); err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.Success(c)
}

// Generate godoc
// @Summary Generate events from availability
// @Description Lays out events of this type over the weekly availability between from and to
// @Tags EventTypes
// @Param id path string true "Event type ID"
// @Param request body dto.GenerateEventsRequest true "Range"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /event-types/{id}/generate [post]
func (controller *EventTypeController) Generate(c echo.Context) error {
	hostID, id, httpErr := controller.hostAndID(c)
	if httpErr != nil {
		return httpErr
	}

	var req dto.GenerateEventsRequest
	if err := c.Bind(&req); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", err.Error())
	}

	events, err := controller.EventTypeService.GenerateEvents(c.Request().Context(), hostID, id, &req)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.Created(c, map[string]any{"events": events})
}
