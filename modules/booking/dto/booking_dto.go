package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest is the public booking form. EventID stays a string so
// a malformed id is reported as a validation error rather than a bind error.
type CreateBookingRequest struct {
	EventID    string  `json:"event_id"`
	GuestEmail string  `json:"guest_email"`
	GuestName  *string `json:"guest_name,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	EventID    uuid.UUID `json:"event_id"`
	GuestEmail string    `json:"guest_email"`
	GuestName  *string   `json:"guest_name"`
	Notes      *string   `json:"notes"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type HostBookingResponse struct {
	BookingResponse
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	EventTitle *string   `json:"event_title"`
}
