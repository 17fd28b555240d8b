package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking claims exactly one event for a guest. Bookings are immutable, so
// there is no updated_at column.
type Booking struct {
	ID         uuid.UUID `db:"id"`
	EventID    uuid.UUID `db:"event_id"`
	GuestEmail string    `db:"guest_email"`
	GuestName  *string   `db:"guest_name"`
	Notes      *string   `db:"notes"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

// HostBooking is a booking joined with the event it claims.
type HostBooking struct {
	Booking
	StartTime  time.Time `db:"start_time"`
	EndTime    time.Time `db:"end_time"`
	EventTitle *string   `db:"event_title"`
}

// ConfirmationView is the denormalized booking, event and host row that
// notification emails are rendered from.
type ConfirmationView struct {
	BookingID        uuid.UUID `db:"booking_id"`
	EventID          uuid.UUID `db:"event_id"`
	HostUserID       uuid.UUID `db:"host_user_id"`
	GuestEmail       string    `db:"guest_email"`
	GuestName        *string   `db:"guest_name"`
	Notes            *string   `db:"notes"`
	EventTitle       *string   `db:"event_title"`
	EventDescription *string   `db:"event_description"`
	StartTime        time.Time `db:"start_time"`
	EndTime          time.Time `db:"end_time"`
	HostEmail        string    `db:"host_email"`
	HostName         string    `db:"host_name"`
}
