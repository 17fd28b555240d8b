package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/modules/auth/entity"

	"github.com/google/uuid"
)

// AuthRepository handles user and login state persistence
type AuthRepository struct {
	DB database.IDatabase
}

func NewAuthRepository(db database.IDatabase) *AuthRepository {
	return &AuthRepository{DB: db}
}

type AuthRepositoryInterface interface {
	UpsertGoogleUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*entity.User, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	SaveLoginState(ctx context.Context, state string, expiresAt time.Time) error
	ConsumeLoginState(ctx context.Context, state string, now time.Time) (*entity.OAuthState, error)
	PurgeExpiredLoginStates(ctx context.Context, now time.Time) (int64, error)
}

// UpsertGoogleUser inserts a user keyed by google_id, or refreshes the
// email, name and Google tokens of the existing row. The slug of an
// existing user never changes.
func (r *AuthRepository) UpsertGoogleUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (google_id, email, name, slug, google_access_token, google_refresh_token, google_token_expires_at)
		VALUES (:google_id, :email, :name, :slug, :google_access_token, :google_refresh_token, :google_token_expires_at)
		ON CONFLICT (google_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			google_access_token = EXCLUDED.google_access_token,
			google_refresh_token = COALESCE(EXCLUDED.google_refresh_token, users.google_refresh_token),
			google_token_expires_at = EXCLUDED.google_token_expires_at,
			updated_at = NOW()
		RETURNING *
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, user)
	if err != nil {
		logger.Error("AuthRepository:UpsertGoogleUser:Error", "error", err)
		return nil, err
	}
	defer rows.Close()

	var saved entity.User
	if rows.Next() {
		if err := rows.StructScan(&saved); err != nil {
			logger.Error("AuthRepository:UpsertGoogleUser:Scan:Error", "error", err)
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.DB.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID:Error", "error", err, "user_id", id)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE slug = $1)`, slug)
	if err != nil {
		logger.Error("AuthRepository:SlugExists:Error", "error", err, "slug", slug)
		return false, err
	}
	return exists, nil
}
