package service

import (
	"context"
	"strings"
	"time"

	"go-booking-api/core/database"
	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	"go-booking-api/modules/event/dto"
	"go-booking-api/modules/event/entity"
	"go-booking-api/modules/event/mapper"
	"go-booking-api/modules/event/repository"

	"github.com/google/uuid"
)

type EventServiceInterface interface {
	ListAvailable(ctx context.Context, hostSlug string) ([]dto.EventResponse, *errors.AppError)
	ListForHost(ctx context.Context, hostID uuid.UUID) ([]dto.EventResponse, *errors.AppError)
	Create(ctx context.Context, hostID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	Update(ctx context.Context, hostID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	Delete(ctx context.Context, hostID, eventID uuid.UUID) *errors.AppError
	CreateSlots(ctx context.Context, hostID uuid.UUID, eventTypeID *uuid.UUID, title *string, slots []dto.Slot) ([]dto.EventResponse, *errors.AppError)
	BusyRanges(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.TimeRange, *errors.AppError)
}

type EventService struct {
	repo repository.EventRepositoryInterface
	now  func() time.Time
}

func NewEventService(repo repository.EventRepositoryInterface) *EventService {
	return &EventService{repo: repo, now: time.Now}
}

// WithClock replaces the time source used for the public listing.
func (service *EventService) WithClock(now func() time.Time) *EventService {
	service.now = now
	return service
}

func (service *EventService) ListAvailable(ctx context.Context, hostSlug string) ([]dto.EventResponse, *errors.AppError) {
	events, err := service.repo.ListAvailable(ctx, service.now().UTC(), strings.TrimSpace(hostSlug))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load events", err)
	}
	return mapper.ToPublicEventResponses(events), nil
}

func (service *EventService) ListForHost(ctx context.Context, hostID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	events, err := service.repo.ListForHost(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load events", err)
	}
	return mapper.ToHostEventResponses(events), nil
}

func (service *EventService) Create(ctx context.Context, hostID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	if req == nil || req.StartTime == nil || req.StartTime.IsZero() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time and end_time are required", nil)
	}
	start := req.StartTime.UTC()

	var end time.Time
	if req.EndTime != nil && !req.EndTime.IsZero() {
		end = req.EndTime.UTC()
	}

	if req.EventTypeID != nil {
		minutes, found, err := service.repo.EventTypeDuration(ctx, *req.EventTypeID, hostID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load event type", err)
		}
		if !found {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "event_type_id does not belong to you", nil)
		}
		if end.IsZero() {
			end = start.Add(time.Duration(minutes) * time.Minute)
		}
	}

	if end.IsZero() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time and end_time are required", nil)
	}
	if !end.After(start) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_time must be after start_time", nil)
	}

	created, err := service.repo.Create(ctx, &entity.Event{
		HostUserID:  hostID,
		EventTypeID: req.EventTypeID,
		StartTime:   start,
		EndTime:     end,
		Title:       trimmed(req.Title),
		Description: trimmed(req.Description),
	})
	if err != nil {
		logger.Error("EventService:Create:Error", "error", err, "host_id", hostID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create event", err)
	}
	return mapper.ToEventResponse(created, entity.StatusAvailable), nil
}

// Update applies a partial change to an owned event. Booked events may be
// changed too.
func (service *EventService) Update(ctx context.Context, hostID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	if req == nil || req.Empty() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "No fields to update", nil)
	}

	existing, err := service.repo.GetForHost(ctx, eventID, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load event", err)
	}
	if existing == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if req.StartTime != nil {
		existing.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		existing.EndTime = req.EndTime.UTC()
	}
	if req.Title != nil {
		existing.Title = trimmed(req.Title)
	}
	if req.Description != nil {
		existing.Description = trimmed(req.Description)
	}
	if !existing.EndTime.After(existing.StartTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_time must be after start_time", nil)
	}

	updated, err := service.repo.Update(ctx, existing)
	if err != nil {
		if database.IsCheckViolation(err) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "end_time must be after start_time", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update event", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return mapper.ToEventResponse(&updated.Event, updated.Status()), nil
}

func (service *EventService) Delete(ctx context.Context, hostID, eventID uuid.UUID) *errors.AppError {
	deleted, err := service.repo.Delete(ctx, eventID, hostID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete event", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return nil
}

// CreateSlots inserts one event per slot atomically.
func (service *EventService) CreateSlots(ctx context.Context, hostID uuid.UUID, eventTypeID *uuid.UUID, title *string, slots []dto.Slot) ([]dto.EventResponse, *errors.AppError) {
	if len(slots) == 0 {
		return []dto.EventResponse{}, nil
	}
	events := make([]entity.Event, 0, len(slots))
	for _, slot := range slots {
		events = append(events, entity.Event{
			HostUserID:  hostID,
			EventTypeID: eventTypeID,
			StartTime:   slot.Start.UTC(),
			EndTime:     slot.End.UTC(),
			Title:       title,
		})
	}

	created, err := service.repo.CreateBatch(ctx, events)
	if err != nil {
		logger.Error("EventService:CreateSlots:Error", "error", err, "host_id", hostID, "count", len(slots))
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create events", err)
	}
	return mapper.ToPublicEventResponses(created), nil
}

func (service *EventService) BusyRanges(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.TimeRange, *errors.AppError) {
	ranges, err := service.repo.BusyRanges(ctx, hostID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load events", err)
	}
	return ranges, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
