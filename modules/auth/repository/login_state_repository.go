package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-booking-api/core/logger"
	"go-booking-api/modules/auth/entity"
)

// SaveLoginState records the CSRF state handed to Google on login start.
func (r *AuthRepository) SaveLoginState(ctx context.Context, state string, expiresAt time.Time) error {
	err := r.DB.ExecContext(ctx,
		`INSERT INTO oauth_states (state, expires_at) VALUES ($1, $2)`, state, expiresAt)
	if err != nil {
		logger.Error("AuthRepository:SaveLoginState:Error", "error", err)
		return err
	}
	return nil
}

// ConsumeLoginState deletes the state and returns it when it was still live.
// Deleting and reading in one statement makes a state usable once even under
// concurrent callbacks.
func (r *AuthRepository) ConsumeLoginState(ctx context.Context, state string, now time.Time) (*entity.OAuthState, error) {
	var consumed entity.OAuthState
	err := r.DB.GetContext(ctx, &consumed, `
		DELETE FROM oauth_states
		WHERE state = $1
		RETURNING id, state, expires_at, created_at, updated_at
	`, state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:ConsumeLoginState:Error", "error", err)
		return nil, err
	}
	if !consumed.ExpiresAt.After(now) {
		return nil, nil
	}
	return &consumed, nil
}

// PurgeExpiredLoginStates removes states abandoned before now and reports how
// many went.
func (r *AuthRepository) PurgeExpiredLoginStates(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecResultContext(ctx, `DELETE FROM oauth_states WHERE expires_at <= $1`, now)
	if err != nil {
		logger.Error("AuthRepository:PurgeExpiredLoginStates:Error", "error", err)
		return 0, err
	}
	return res.RowsAffected()
}
