package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/modules/calendar/entity"

	"github.com/google/uuid"
)

type CalendarRepository struct {
	DB database.IDatabase
}

func NewCalendarRepository(db database.IDatabase) *CalendarRepository {
	return &CalendarRepository{DB: db}
}

type CalendarRepositoryInterface interface {
	GetConnection(ctx context.Context, userID uuid.UUID) (*entity.CalendarConnection, error)
	SaveToken(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expiresAt time.Time) error
}

func (r *CalendarRepository) GetConnection(ctx context.Context, userID uuid.UUID) (*entity.CalendarConnection, error) {
	query := `
		SELECT id, email, google_access_token, google_refresh_token, google_token_expires_at
		FROM users
		WHERE id = $1
	`
	var conn entity.CalendarConnection
	if err := r.DB.GetContext(ctx, &conn, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetConnection:Error", "error", err, "user_id", userID)
		return nil, err
	}
	return &conn, nil
}

// SaveToken stores a refreshed token. An empty refresh token keeps the
// stored one, since Google only returns it on the first consent.
func (r *CalendarRepository) SaveToken(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET google_access_token = $2,
		    google_refresh_token = COALESCE(NULLIF($3, ''), google_refresh_token),
		    google_token_expires_at = $4,
		    updated_at = NOW()
		WHERE id = $1
	`
	var expiry *time.Time
	if !expiresAt.IsZero() {
		expiry = &expiresAt
	}
	if err := r.DB.ExecContext(ctx, query, userID, accessToken, refreshToken, expiry); err != nil {
		logger.Error("CalendarRepository:SaveToken:Error", "error", err, "user_id", userID)
		return err
	}
	return nil
}
