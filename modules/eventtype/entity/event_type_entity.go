package entity

import (
	"go-booking-api/core/entity"

	"github.com/google/uuid"
)

// EventType is a reusable template (name, duration, color) for events.
type EventType struct {
	entity.BaseEntity
	HostUserID      uuid.UUID `db:"host_user_id"`
	Name            string    `db:"name"`
	DurationMinutes int       `db:"duration_minutes"`
	Description     *string   `db:"description"`
	Color           *string   `db:"color"`
}
