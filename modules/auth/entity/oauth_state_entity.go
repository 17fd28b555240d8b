package entity

import (
	"time"

	"go-booking-api/core/entity"
)

// OAuthState is a one-time CSRF token for the Google login redirect.
type OAuthState struct {
	State     string    `db:"state"`
	ExpiresAt time.Time `db:"expires_at"`
	entity.BaseEntity
}
