package repository

import (
	"context"
	"database/sql"
	"errors"

	"go-booking-api/core/logger"
	"go-booking-api/modules/auth/entity"
)

func (r *AuthRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	var user entity.User
	err := r.DB.GetContext(ctx, &user, `SELECT * FROM users WHERE google_id = $1`, googleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByGoogleID:Error", "error", err)
		return nil, err
	}
	return &user, nil
}
