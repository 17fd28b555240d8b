package controller

import (
	"strconv"

	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/availability/dto"
	"go-booking-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(availabilityService service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: availabilityService,
	}
}

// List godoc
// @Summary List weekly availability
// @Tags Availability
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} controller.ErrorResponse
// @Router /availability [get]
func (controller *AvailabilityController) List(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	rows, err := controller.AvailabilityService.List(c.Request().Context(), hostID)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.OK(c, map[string]any{"availability": rows})
}

// Upsert godoc
// @Summary Create or replace the window for a weekday
// @Tags Availability
// @Param request body dto.UpsertAvailabilityRequest true "Window"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} controller.ErrorResponse
// @Router /availability [post]
func (controller *AvailabilityController) Upsert(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	var req dto.UpsertAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", err.Error())
	}

	row, created, err := controller.AvailabilityService.Upsert(c.Request().Context(), hostID, &req)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	body := map[string]any{"availability": row}
	if created {
		return controller.Created(c, body)
	}
	return controller.OK(c, body)
}

// Delete godoc
// @Summary Remove the window for a weekday
// @Tags Availability
// @Param day path int true "Day of week (0=Sunday)"
// @Success 200 {object} controller.SuccessFlag
// @Failure 400 {object} controller.ErrorResponse
// @Router /availability/{day} [delete]
func (controller *AvailabilityController) Delete(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	day, convErr := strconv.Atoi(c.Param("day"))
	if convErr != nil {
		return controller.BadRequest(errors.ErrInvalidInput, "day must be a number between 0 and 6")
	}

	if err := controller.AvailabilityService.Delete(c.Request().Context(), hostID, day); err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.Success(c)
}
