package entity

import (
	"time"

	"github.com/google/uuid"
)

// CalendarConnection is the Google credential pair stored on a host's user
// row at login.
type CalendarConnection struct {
	UserID         uuid.UUID  `db:"id"`
	Email          string     `db:"email"`
	AccessToken    *string    `db:"google_access_token"`
	RefreshToken   *string    `db:"google_refresh_token"`
	TokenExpiresAt *time.Time `db:"google_token_expires_at"`
}

func (c *CalendarConnection) Connected() bool {
	return c != nil && c.AccessToken != nil && *c.AccessToken != ""
}
