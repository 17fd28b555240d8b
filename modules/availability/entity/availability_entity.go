package entity

import (
	"go-booking-api/core/entity"

	"github.com/google/uuid"
)

// Availability is a weekly bookable window for one host and weekday.
// StartTime and EndTime are zero-padded HH:MM strings.
type Availability struct {
	entity.BaseEntity
	HostUserID uuid.UUID `db:"host_user_id"`
	DayOfWeek  int       `db:"day_of_week"`
	StartTime  string    `db:"start_time"`
	EndTime    string    `db:"end_time"`
	Enabled    bool      `db:"enabled"`
}
