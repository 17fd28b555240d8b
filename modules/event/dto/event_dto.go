package dto

import (
	"time"

	"go-booking-api/core/utils"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	EventTypeID *uuid.UUID       `json:"event_type_id,omitempty"`
	StartTime   *utils.Timestamp `json:"start_time"`
	EndTime     *utils.Timestamp `json:"end_time,omitempty"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// UpdateEventRequest carries only the fields to change.
type UpdateEventRequest struct {
	StartTime   *utils.Timestamp `json:"start_time,omitempty"`
	EndTime     *utils.Timestamp `json:"end_time,omitempty"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (r *UpdateEventRequest) Empty() bool {
	return r.StartTime == nil && r.EndTime == nil && r.Title == nil && r.Description == nil
}

type EventResponse struct {
	ID           uuid.UUID  `json:"id"`
	HostUserID   uuid.UUID  `json:"host_user_id"`
	EventTypeID  *uuid.UUID `json:"event_type_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       string     `json:"status"`
	BookingCount *int       `json:"booking_count,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Slot is one planned event for batch creation.
type Slot struct {
	Start time.Time
	End   time.Time
}
