package repository

import (
	"context"

	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/modules/availability/entity"

	"github.com/google/uuid"
)

type AvailabilityRepository struct {
	DB database.IDatabase
}

func NewAvailabilityRepository(db database.IDatabase) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

type AvailabilityRepositoryInterface interface {
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]entity.Availability, error)
	Upsert(ctx context.Context, a *entity.Availability) (*entity.Availability, bool, error)
	DeleteByDay(ctx context.Context, hostID uuid.UUID, day int) error
}

func (r *AvailabilityRepository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]entity.Availability, error) {
	query := `
		SELECT * FROM availability
		WHERE host_user_id = $1
		ORDER BY day_of_week ASC
	`
	rows := []entity.Availability{}
	if err := r.DB.SelectContext(ctx, &rows, query, hostID); err != nil {
		logger.Error("AvailabilityRepository:ListByHost:Error", "error", err, "host_id", hostID)
		return nil, err
	}
	return rows, nil
}

type upsertRow struct {
	entity.Availability
	Inserted bool `db:"inserted"`
}

// Upsert writes the single row for (host, day). The boolean reports whether
// the row was newly inserted; xmax is zero only for a fresh insert.
func (r *AvailabilityRepository) Upsert(ctx context.Context, a *entity.Availability) (*entity.Availability, bool, error) {
	query := `
		INSERT INTO availability (host_user_id, day_of_week, start_time, end_time, enabled)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (host_user_id, day_of_week) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			enabled = EXCLUDED.enabled,
			updated_at = NOW()
		RETURNING *, (xmax = 0) AS inserted
	`
	var row upsertRow
	err := r.DB.GetContext(ctx, &row, query, a.HostUserID, a.DayOfWeek, a.StartTime, a.EndTime, a.Enabled)
	if err != nil {
		logger.Error("AvailabilityRepository:Upsert:Error", "error", err, "host_id", a.HostUserID, "day", a.DayOfWeek)
		return nil, false, err
	}
	return &row.Availability, row.Inserted, nil
}

func (r *AvailabilityRepository) DeleteByDay(ctx context.Context, hostID uuid.UUID, day int) error {
	query := `DELETE FROM availability WHERE host_user_id = $1 AND day_of_week = $2`
	if err := r.DB.ExecContext(ctx, query, hostID, day); err != nil {
		logger.Error("AvailabilityRepository:DeleteByDay:Error", "error", err, "host_id", hostID, "day", day)
		return err
	}
	return nil
}
