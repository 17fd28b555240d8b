package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	GoogleConnected bool      `json:"google_connected"`
	CreatedAt       time.Time `json:"created_at"`
}

// LoginResult is produced by a completed Google login.
type LoginResult struct {
	SessionToken string
	ExpiresAt    time.Time
	User         *UserResponse
}

type GoogleUserInfo struct {
	ID    string
	Email string
	Name  string
}
