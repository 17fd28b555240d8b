package repository

import (
	"context"
	"database/sql"
	"errors"

	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/modules/eventtype/entity"

	"github.com/google/uuid"
)

type EventTypeRepository struct {
	DB database.IDatabase
}

func NewEventTypeRepository(db database.IDatabase) *EventTypeRepository {
	return &EventTypeRepository{DB: db}
}

type EventTypeRepositoryInterface interface {
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]entity.EventType, error)
	GetForHost(ctx context.Context, id, hostID uuid.UUID) (*entity.EventType, error)
	Create(ctx context.Context, et *entity.EventType) (*entity.EventType, error)
	Update(ctx context.Context, et *entity.EventType) (*entity.EventType, error)
	Delete(ctx context.Context, id, hostID uuid.UUID) (bool, error)
}

func (r *EventTypeRepository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]entity.EventType, error) {
	rows := []entity.EventType{}
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT * FROM event_types WHERE host_user_id = $1 ORDER BY duration_minutes ASC, created_at ASC`, hostID)
	if err != nil {
		logger.Error("EventTypeRepository:ListByHost:Error", "error", err, "host_id", hostID)
		return nil, err
	}
	return rows, nil
}

func (r *EventTypeRepository) GetForHost(ctx context.Context, id, hostID uuid.UUID) (*entity.EventType, error) {
	var et entity.EventType
	err := r.DB.GetContext(ctx, &et, `SELECT * FROM event_types WHERE id = $1 AND host_user_id = $2`, id, hostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventTypeRepository:GetForHost:Error", "error", err, "event_type_id", id)
		return nil, err
	}
	return &et, nil
}

func (r *EventTypeRepository) Create(ctx context.Context, et *entity.EventType) (*entity.EventType, error) {
	query := `
		INSERT INTO event_types (host_user_id, name, duration_minutes, description, color)
		VALUES (:host_user_id, :name, :duration_minutes, :description, :color)
		RETURNING *
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, et)
	if err != nil {
		logger.Error("EventTypeRepository:Create:Error", "error", err, "host_id", et.HostUserID)
		return nil, err
	}
	defer rows.Close()

	var created entity.EventType
	if rows.Next() {
		if err := rows.StructScan(&created); err != nil {
			logger.Error("EventTypeRepository:Create:Scan:Error", "error", err)
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *EventTypeRepository) Update(ctx context.Context, et *entity.EventType) (*entity.EventType, error) {
	query := `
		UPDATE event_types
		SET name = $3, duration_minutes = $4, description = $5, color = $6, updated_at = NOW()
		WHERE id = $1 AND host_user_id = $2
		RETURNING *
	`
	var updated entity.EventType
	err := r.DB.GetContext(ctx, &updated, query, et.ID, et.HostUserID, et.Name, et.DurationMinutes, et.Description, et.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventTypeRepository:Update:Error", "error", err, "event_type_id", et.ID)
		return nil, err
	}
	return &updated, nil
}

func (r *EventTypeRepository) Delete(ctx context.Context, id, hostID uuid.UUID) (bool, error) {
	res, err := r.DB.ExecResultContext(ctx, `DELETE FROM event_types WHERE id = $1 AND host_user_id = $2`, id, hostID)
	if err != nil {
		logger.Error("EventTypeRepository:Delete:Error", "error", err, "event_type_id", id)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
