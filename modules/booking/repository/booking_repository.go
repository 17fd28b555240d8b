package repository

import (
	"context"
	"database/sql"
	"errors"

	"go-booking-api/core/constants"
	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/modules/booking/entity"

	"github.com/google/uuid"
)

type BookingRepository struct {
	DB database.IDatabase
}

func NewBookingRepository(db database.IDatabase) *BookingRepository {
	return &BookingRepository{DB: db}
}

type BookingRepositoryInterface interface {
	EventExists(ctx context.Context, eventID uuid.UUID) (bool, error)
	Create(ctx context.Context, b *entity.Booking) (*entity.Booking, error)
	GetConfirmationView(ctx context.Context, bookingID uuid.UUID) (*entity.ConfirmationView, error)
	DeleteForHost(ctx context.Context, bookingID, hostID uuid.UUID) (bool, error)
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]entity.HostBooking, error)
}

func (r *BookingRepository) EventExists(ctx context.Context, eventID uuid.UUID) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID)
	if err != nil {
		logger.Error("BookingRepository:EventExists:Error", "error", err, "event_id", eventID)
		return false, err
	}
	return exists, nil
}

// Create inserts the booking. A second booking for the same event fails with
// a unique violation on bookings_event_id_key; callers treat that as the
// conflict signal.
func (r *BookingRepository) Create(ctx context.Context, b *entity.Booking) (*entity.Booking, error) {
	query := `
		INSERT INTO bookings (event_id, guest_email, guest_name, notes, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`
	status := b.Status
	if status == "" {
		status = entity.StatusConfirmed
	}

	var created entity.Booking
	err := r.DB.GetContext(ctx, &created, query, b.EventID, b.GuestEmail, b.GuestName, b.Notes, status)
	if err != nil {
		if database.IsUniqueViolation(err) {
			logger.Info("BookingRepository:Create:AlreadyBooked", "event_id", b.EventID)
		} else {
			logger.Error("BookingRepository:Create:Error", "error", err, "event_id", b.EventID)
		}
		return nil, err
	}
	return &created, nil
}

func (r *BookingRepository) GetConfirmationView(ctx context.Context, bookingID uuid.UUID) (*entity.ConfirmationView, error) {
	query := `
		SELECT b.id AS booking_id, b.event_id, b.guest_email, b.guest_name, b.notes,
		       e.host_user_id, e.title AS event_title, e.description AS event_description,
		       e.start_time, e.end_time,
		       u.email AS host_email, u.name AS host_name
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		JOIN users u ON u.id = e.host_user_id
		WHERE b.id = $1
	`
	var view entity.ConfirmationView
	if err := r.DB.GetContext(ctx, &view, query, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("BookingRepository:GetConfirmationView:Error", "error", err, "booking_id", bookingID)
		return nil, err
	}
	return &view, nil
}

// DeleteForHost removes a booking whose event belongs to hostID. It reports
// false when no such booking exists.
func (r *BookingRepository) DeleteForHost(ctx context.Context, bookingID, hostID uuid.UUID) (bool, error) {
	query := `
		DELETE FROM bookings b
		USING events e
		WHERE b.id = $1
		  AND e.id = b.event_id
		  AND e.host_user_id = $2
	`
	result, err := r.DB.ExecResultContext(ctx, query, bookingID, hostID)
	if err != nil {
		logger.Error("BookingRepository:DeleteForHost:Error", "error", err, "booking_id", bookingID)
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BookingRepository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]entity.HostBooking, error) {
	query := `
		SELECT b.*, e.start_time, e.end_time, e.title AS event_title
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE e.host_user_id = $1
		ORDER BY e.start_time DESC
		LIMIT $2
	`
	bookings := []entity.HostBooking{}
	if err := r.DB.SelectContext(ctx, &bookings, query, hostID, constants.ListLimit); err != nil {
		logger.Error("BookingRepository:ListByHost:Error", "error", err, "host_id", hostID)
		return nil, err
	}
	return bookings, nil
}
