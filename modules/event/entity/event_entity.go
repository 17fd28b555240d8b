package entity

import (
	"time"

	"go-booking-api/core/entity"

	"github.com/google/uuid"
)

const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
)

// Event is a concrete bookable time slot owned by a host.
type Event struct {
	entity.BaseEntity
	HostUserID    uuid.UUID  `db:"host_user_id"`
	EventTypeID   *uuid.UUID `db:"event_type_id"`
	StartTime     time.Time  `db:"start_time"`
	EndTime       time.Time  `db:"end_time"`
	Title         *string    `db:"title"`
	Description   *string    `db:"description"`
	GoogleEventID *string    `db:"google_event_id"`
}

// HostEvent is an event as seen by its host.
type HostEvent struct {
	Event
	BookingCount int `db:"booking_count"`
}

func (e *HostEvent) Status() string {
	if e.BookingCount > 0 {
		return StatusBooked
	}
	return StatusAvailable
}

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `db:"start_time"`
	End   time.Time `db:"end_time"`
}

func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && r.End.After(o.Start)
}
