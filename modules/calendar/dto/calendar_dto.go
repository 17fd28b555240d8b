package dto

import "time"

// TimeSlot is a busy interval reported by the calendar provider.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type FreeBusyResponse struct {
	TimeMin time.Time  `json:"time_min"`
	TimeMax time.Time  `json:"time_max"`
	Busy    []TimeSlot `json:"busy"`
}

// CalendarEventResponse is one event from the host's primary calendar.
// All-day events carry midnight UTC bounds and AllDay set.
type CalendarEventResponse struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	Status      string    `json:"status,omitempty"`
	HTMLLink    string    `json:"html_link,omitempty"`
}
