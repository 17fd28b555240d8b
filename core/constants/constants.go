package constants

import "time"

// Context keys
const (
	ContextHostID       = "host_id"
	ContextSessionToken = "session_token"
)

// Redis keys
const (
	RedisKeyTokenBlacklist = "session:blacklist:"
)

// Background tasks
const (
	TaskBookingConfirmation = "booking:confirmation"
	TaskBookingCancellation = "booking:cancellation"
	QueueNotifications      = "notifications"
	NotificationTimeout     = 30 * time.Second
	EnqueueTimeout          = time.Second
	WorkerConcurrency       = 10
)

// Listing and generation limits
const (
	ListLimit           = 100
	GenerateEventsLimit = 200
	SlotStepMinutes     = 30
	GenerateMaxRange    = 62 * 24 * time.Hour
)

const (
	OAuthStateTTL         = 10 * time.Minute
	FreeBusyDefaultWindow = 7 * 24 * time.Hour
	CalendarSyncWindow    = 30 * 24 * time.Hour
	GoogleCalendarPrimary = "primary"
	InviteFilename        = "meeting.ics"
	InviteArchivePrefix   = "invites/"
)
