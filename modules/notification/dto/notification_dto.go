package dto

import (
	"time"

	"github.com/google/uuid"
)

// BookingNotification is the event, booking and host data a booking email
// is rendered from. It is also the queue task payload.
type BookingNotification struct {
	BookingID        uuid.UUID `json:"booking_id"`
	EventID          uuid.UUID `json:"event_id"`
	EventTitle       string    `json:"event_title"`
	EventDescription string    `json:"event_description,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	GuestEmail       string    `json:"guest_email"`
	GuestName        string    `json:"guest_name,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	HostEmail        string    `json:"host_email"`
	HostName         string    `json:"host_name"`
}

func (n *BookingNotification) Title() string {
	if n.EventTitle == "" {
		return "Meeting"
	}
	return n.EventTitle
}
