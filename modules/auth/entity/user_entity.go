package entity

import (
	"time"

	"go-booking-api/core/entity"
)

type User struct {
	entity.BaseEntity
	GoogleID             *string    `db:"google_id"`
	Email                string     `db:"email"`
	Name                 string     `db:"name"`
	Slug                 string     `db:"slug"`
	GoogleAccessToken    *string    `db:"google_access_token"`
	GoogleRefreshToken   *string    `db:"google_refresh_token"`
	GoogleTokenExpiresAt *time.Time `db:"google_token_expires_at"`
}

func (u *User) GoogleConnected() bool {
	return u.GoogleAccessToken != nil && *u.GoogleAccessToken != ""
}
