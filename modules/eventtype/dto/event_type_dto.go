package dto

import (
	"time"

	"go-booking-api/core/utils"

	"github.com/google/uuid"
)

type CreateEventTypeRequest struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Description     *string `json:"description,omitempty"`
	Color           *string `json:"color,omitempty"`
}

type UpdateEventTypeRequest struct {
	Name            *string `json:"name,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Description     *string `json:"description,omitempty"`
	Color           *string `json:"color,omitempty"`
}

func (r *UpdateEventTypeRequest) Empty() bool {
	return r.Name == nil && r.DurationMinutes == nil && r.Description == nil && r.Color == nil
}

// GenerateEventsRequest asks for events of a type to be laid out over the
// host's weekly availability between From and To. Timezone is the IANA zone
// the availability clock times are read in; UTC when empty.
type GenerateEventsRequest struct {
	From     *utils.Timestamp `json:"from"`
	To       *utils.Timestamp `json:"to"`
	Timezone string           `json:"timezone,omitempty"`
}

type EventTypeResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Description     *string   `json:"description"`
	Color           *string   `json:"color"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
