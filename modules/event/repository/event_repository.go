package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-booking-api/core/constants"
	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/modules/event/entity"

	"github.com/google/uuid"
)

type EventRepository struct {
	DB database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

type EventRepositoryInterface interface {
	ListAvailable(ctx context.Context, now time.Time, hostSlug string) ([]entity.Event, error)
	ListForHost(ctx context.Context, hostID uuid.UUID) ([]entity.HostEvent, error)
	GetForHost(ctx context.Context, id, hostID uuid.UUID) (*entity.Event, error)
	EventTypeDuration(ctx context.Context, eventTypeID, hostID uuid.UUID) (int, bool, error)
	Create(ctx context.Context, e *entity.Event) (*entity.Event, error)
	CreateBatch(ctx context.Context, events []entity.Event) ([]entity.Event, error)
	Update(ctx context.Context, e *entity.Event) (*entity.HostEvent, error)
	Delete(ctx context.Context, id, hostID uuid.UUID) (bool, error)
	BusyRanges(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.TimeRange, error)
}

// ListAvailable returns unbooked events starting after now, soonest first.
// An empty hostSlug lists every host.
func (r *EventRepository) ListAvailable(ctx context.Context, now time.Time, hostSlug string) ([]entity.Event, error) {
	query := `
		SELECT e.*
		FROM events e
		JOIN users u ON u.id = e.host_user_id
		LEFT JOIN bookings b ON b.event_id = e.id
		WHERE e.start_time > $1
		  AND b.id IS NULL
		  AND ($2::text = '' OR u.slug = $2::text)
		ORDER BY e.start_time ASC
		LIMIT $3
	`
	events := []entity.Event{}
	if err := r.DB.SelectContext(ctx, &events, query, now, hostSlug, constants.ListLimit); err != nil {
		logger.Error("EventRepository:ListAvailable:Error", "error", err, "host", hostSlug)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) ListForHost(ctx context.Context, hostID uuid.UUID) ([]entity.HostEvent, error) {
	query := `
		SELECT e.*, COUNT(b.id) AS booking_count
		FROM events e
		LEFT JOIN bookings b ON b.event_id = e.id
		WHERE e.host_user_id = $1
		GROUP BY e.id
		ORDER BY e.start_time DESC
		LIMIT $2
	`
	events := []entity.HostEvent{}
	if err := r.DB.SelectContext(ctx, &events, query, hostID, constants.ListLimit); err != nil {
		logger.Error("EventRepository:ListForHost:Error", "error", err, "host_id", hostID)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) GetForHost(ctx context.Context, id, hostID uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	err := r.DB.GetContext(ctx, &event, `SELECT * FROM events WHERE id = $1 AND host_user_id = $2`, id, hostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:GetForHost:Error", "error", err, "event_id", id)
		return nil, err
	}
	return &event, nil
}

// EventTypeDuration looks up the duration of an event type owned by hostID.
func (r *EventRepository) EventTypeDuration(ctx context.Context, eventTypeID, hostID uuid.UUID) (int, bool, error) {
	var minutes int
	err := r.DB.GetContext(ctx, &minutes,
		`SELECT duration_minutes FROM event_types WHERE id = $1 AND host_user_id = $2`, eventTypeID, hostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		logger.Error("EventRepository:EventTypeDuration:Error", "error", err, "event_type_id", eventTypeID)
		return 0, false, err
	}
	return minutes, true, nil
}

const insertEvent = `
	INSERT INTO events (host_user_id, event_type_id, start_time, end_time, title, description)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING *
`

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) (*entity.Event, error) {
	var created entity.Event
	err := r.DB.GetContext(ctx, &created, insertEvent,
		e.HostUserID, e.EventTypeID, e.StartTime, e.EndTime, e.Title, e.Description)
	if err != nil {
		logger.Error("EventRepository:Create:Error", "error", err, "host_id", e.HostUserID)
		return nil, err
	}
	return &created, nil
}

// CreateBatch inserts all events in one transaction.
func (r *EventRepository) CreateBatch(ctx context.Context, events []entity.Event) ([]entity.Event, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:CreateBatch:Begin:Error", "error", err)
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	created := make([]entity.Event, 0, len(events))
	for _, e := range events {
		var row entity.Event
		err := tx.GetContext(ctx, &row, insertEvent,
			e.HostUserID, e.EventTypeID, e.StartTime, e.EndTime, e.Title, e.Description)
		if err != nil {
			logger.Error("EventRepository:CreateBatch:Insert:Error", "error", err, "start", e.StartTime)
			return nil, err
		}
		created = append(created, row)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:CreateBatch:Commit:Error", "error", err)
		return nil, err
	}
	return created, nil
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) (*entity.HostEvent, error) {
	query := `
		UPDATE events
		SET start_time = $3, end_time = $4, title = $5, description = $6, updated_at = NOW()
		WHERE id = $1 AND host_user_id = $2
		RETURNING *, (SELECT COUNT(*) FROM bookings b WHERE b.event_id = events.id) AS booking_count
	`
	var updated entity.HostEvent
	err := r.DB.GetContext(ctx, &updated, query, e.ID, e.HostUserID, e.StartTime, e.EndTime, e.Title, e.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:Update:Error", "error", err, "event_id", e.ID)
		return nil, err
	}
	return &updated, nil
}

// Delete removes an owned event; its booking goes with it.
func (r *EventRepository) Delete(ctx context.Context, id, hostID uuid.UUID) (bool, error) {
	res, err := r.DB.ExecResultContext(ctx, `DELETE FROM events WHERE id = $1 AND host_user_id = $2`, id, hostID)
	if err != nil {
		logger.Error("EventRepository:Delete:Error", "error", err, "event_id", id)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BusyRanges returns the host's events intersecting [from, to).
func (r *EventRepository) BusyRanges(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.TimeRange, error) {
	query := `
		SELECT start_time, end_time FROM events
		WHERE host_user_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time ASC
	`
	ranges := []entity.TimeRange{}
	if err := r.DB.SelectContext(ctx, &ranges, query, hostID, from, to); err != nil {
		logger.Error("EventRepository:BusyRanges:Error", "error", err, "host_id", hostID)
		return nil, err
	}
	return ranges, nil
}
