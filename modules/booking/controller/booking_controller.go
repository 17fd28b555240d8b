package controller

import (
	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/booking/dto"
	"go-booking-api/modules/booking/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BookingController struct {
	controller.BaseController
	BookingService service.BookingServiceInterface
}

func NewBookingController(bookingService service.BookingServiceInterface) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		BookingService: bookingService,
	}
}

// Create godoc
// @Summary Book an event
// @Description Public endpoint. Each event can be booked once.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Failure 429 {object} controller.ErrorResponse
// @Router /bookings [post]
func (controller *BookingController) Create(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", err.Error())
	}

	booking, err := controller.BookingService.CreateBooking(c.Request().Context(), &req)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.Created(c, map[string]any{"booking": booking})
}

// List godoc
// @Summary List bookings on the host's events
// @Tags Bookings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} controller.ErrorResponse
// @Router /bookings [get]
func (controller *BookingController) List(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	bookings, err := controller.BookingService.ListBookings(c.Request().Context(), hostID)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.OK(c, map[string]any{"bookings": bookings})
}

// Cancel godoc
// @Summary Cancel a booking
// @Description Deletes the booking so the event can be booked again
// @Tags Bookings
// @Param id path string true "Booking ID"
// @Success 200 {object} controller.SuccessFlag
// @Failure 401 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /bookings/{id} [delete]
func (controller *BookingController) Cancel(c echo.Context) error {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	bookingID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		return controller.NotFound(errors.ErrNotFound, "Booking not found")
	}

	if err := controller.BookingService.CancelBooking(c.Request().Context(), bookingID, hostID); err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.Success(c)
}
