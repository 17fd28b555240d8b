package service

import (
	"context"
	"strings"

	"go-booking-api/core/database"
	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	"go-booking-api/modules/booking/dto"
	"go-booking-api/modules/booking/entity"
	"go-booking-api/modules/booking/mapper"
	"go-booking-api/modules/booking/repository"
	notificationService "go-booking-api/modules/notification/service"

	"github.com/google/uuid"
)

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, *errors.AppError)
	CancelBooking(ctx context.Context, bookingID, hostID uuid.UUID) *errors.AppError
	ListBookings(ctx context.Context, hostID uuid.UUID) ([]dto.HostBookingResponse, *errors.AppError)
}

type BookingService struct {
	repo       repository.BookingRepositoryInterface
	dispatcher notificationService.Dispatcher
}

// NewBookingService builds the booking engine. dispatcher may be nil, in
// which case no emails are sent.
func NewBookingService(repo repository.BookingRepositoryInterface, dispatcher notificationService.Dispatcher) *BookingService {
	return &BookingService{repo: repo, dispatcher: dispatcher}
}

// CreateBooking claims an event for a guest. At most one booking per event
// succeeds; the loser of a race gets ErrAlreadyExists. Confirmation emails
// are dispatched in the background and never affect the result.
func (service *BookingService) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, *errors.AppError) {
	if req == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event_id and guest_email are required", nil)
	}
	rawID := strings.TrimSpace(req.EventID)
	email := strings.TrimSpace(req.GuestEmail)
	if rawID == "" || email == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event_id and guest_email are required", nil)
	}
	eventID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event_id must be a valid id", nil)
	}

	exists, err := service.repo.EventExists(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load event", err)
	}
	if !exists {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	booking, err := service.repo.Create(ctx, &entity.Booking{
		EventID:    eventID,
		GuestEmail: email,
		GuestName:  trimmed(req.GuestName),
		Notes:      trimmed(req.Notes),
		Status:     entity.StatusConfirmed,
	})
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "Event is already booked", nil)
		case database.IsForeignKeyViolation(err):
			// deleted between the lookup and the insert
			return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create booking", err)
	}

	logger.Info("BookingService:CreateBooking:Success", "booking_id", booking.ID, "event_id", eventID)

	if view := service.confirmationView(ctx, booking.ID); view != nil && service.dispatcher != nil {
		service.dispatcher.DispatchConfirmation(ctx, mapper.ToBookingNotification(view))
	}
	return mapper.ToBookingResponse(booking), nil
}

// CancelBooking hard-deletes a booking on one of the host's events, which
// frees the event for rebooking. The guest is told in the background.
func (service *BookingService) CancelBooking(ctx context.Context, bookingID, hostID uuid.UUID) *errors.AppError {
	if hostID == uuid.Nil {
		return errors.NewAppError(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	view := service.confirmationView(ctx, bookingID)

	deleted, err := service.repo.DeleteForHost(ctx, bookingID, hostID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to cancel booking", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}

	logger.Info("BookingService:CancelBooking:Success", "booking_id", bookingID, "host_id", hostID)

	if view != nil && view.HostUserID == hostID && service.dispatcher != nil {
		service.dispatcher.DispatchCancellation(ctx, mapper.ToBookingNotification(view))
	}
	return nil
}

func (service *BookingService) ListBookings(ctx context.Context, hostID uuid.UUID) ([]dto.HostBookingResponse, *errors.AppError) {
	if hostID == uuid.Nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	bookings, err := service.repo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load bookings", err)
	}
	return mapper.ToHostBookingResponses(bookings), nil
}

// confirmationView is best effort: a failed lookup only costs the emails.
func (service *BookingService) confirmationView(ctx context.Context, bookingID uuid.UUID) *entity.ConfirmationView {
	view, err := service.repo.GetConfirmationView(ctx, bookingID)
	if err != nil {
		logger.Warn("BookingService:ConfirmationView:Error", "error", err, "booking_id", bookingID)
		return nil
	}
	return view
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
