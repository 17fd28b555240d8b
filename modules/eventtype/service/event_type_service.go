package service

import (
	"context"
	"strings"
	"time"

	"go-booking-api/core/constants"
	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	availabilityEntity "go-booking-api/modules/availability/entity"
	eventDto "go-booking-api/modules/event/dto"
	eventEntity "go-booking-api/modules/event/entity"
	"go-booking-api/modules/eventtype/dto"
	"go-booking-api/modules/eventtype/entity"
	"go-booking-api/modules/eventtype/mapper"
	"go-booking-api/modules/eventtype/repository"

	"github.com/google/uuid"
)

type EventTypeServiceInterface interface {
	List(ctx context.Context, hostID uuid.UUID) ([]dto.EventTypeResponse, *errors.AppError)
	Create(ctx context.Context, hostID uuid.UUID, req *dto.CreateEventTypeRequest) (*dto.EventTypeResponse, *errors.AppError)
	Update(ctx context.Context, hostID, id uuid.UUID, req *dto.UpdateEventTypeRequest) (*dto.EventTypeResponse, *errors.AppError)
	Delete(ctx context.Context, hostID, id uuid.UUID) *errors.AppError
	GenerateEvents(ctx context.Context, hostID, id uuid.UUID, req *dto.GenerateEventsRequest) ([]eventDto.EventResponse, *errors.AppError)
}

// WindowSource provides a host's enabled weekly availability.
type WindowSource interface {
	EnabledWindows(ctx context.Context, hostID uuid.UUID) ([]availabilityEntity.Availability, *errors.AppError)
}

// SlotWriter reads existing host events and stores generated ones.
type SlotWriter interface {
	BusyRanges(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]eventEntity.TimeRange, *errors.AppError)
	CreateSlots(ctx context.Context, hostID uuid.UUID, eventTypeID *uuid.UUID, title *string, slots []eventDto.Slot) ([]eventDto.EventResponse, *errors.AppError)
}

type EventTypeService struct {
	repo    repository.EventTypeRepositoryInterface
	windows WindowSource
	events  SlotWriter
	planner *SlotPlanner
	now     func() time.Time
}

func NewEventTypeService(repo repository.EventTypeRepositoryInterface, windows WindowSource, events SlotWriter) *EventTypeService {
	return &EventTypeService{
		repo:    repo,
		windows: windows,
		events:  events,
		planner: NewSlotPlanner(),
		now:     time.Now,
	}
}

func (service *EventTypeService) WithClock(now func() time.Time) *EventTypeService {
	service.now = now
	return service
}

func (service *EventTypeService) List(ctx context.Context, hostID uuid.UUID) ([]dto.EventTypeResponse, *errors.AppError) {
	rows, err := service.repo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load event types", err)
	}
	return mapper.ToEventTypeResponses(rows), nil
}

func (service *EventTypeService) Create(ctx context.Context, hostID uuid.UUID, req *dto.CreateEventTypeRequest) (*dto.EventTypeResponse, *errors.AppError) {
	if req == nil || strings.TrimSpace(req.Name) == "" || req.DurationMinutes == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "name and duration_minutes are required", nil)
	}
	if req.DurationMinutes < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "duration_minutes must be positive", nil)
	}

	created, err := service.repo.Create(ctx, &entity.EventType{
		HostUserID:      hostID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Description:     optional(req.Description),
		Color:           optional(req.Color),
	})
	if err != nil {
		logger.Error("EventTypeService:Create:Error", "error", err, "host_id", hostID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create event type", err)
	}
	return mapper.ToEventTypeResponse(created), nil
}

func (service *EventTypeService) Update(ctx context.Context, hostID, id uuid.UUID, req *dto.UpdateEventTypeRequest) (*dto.EventTypeResponse, *errors.AppError) {
	if req == nil || req.Empty() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "No fields to update", nil)
	}

	existing, err := service.repo.GetForHost(ctx, id, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load event type", err)
	}
	if existing == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", nil)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "name cannot be empty", nil)
		}
		existing.Name = name
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "duration_minutes must be positive", nil)
		}
		existing.DurationMinutes = *req.DurationMinutes
	}
	if req.Description != nil {
		existing.Description = optional(req.Description)
	}
	if req.Color != nil {
		existing.Color = optional(req.Color)
	}

	updated, err := service.repo.Update(ctx, existing)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update event type", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", nil)
	}
	return mapper.ToEventTypeResponse(updated), nil
}

func (service *EventTypeService) Delete(ctx context.Context, hostID, id uuid.UUID) *errors.AppError {
	deleted, err := service.repo.Delete(ctx, id, hostID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete event type", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "Event type not found", nil)
	}
	return nil
}

// GenerateEvents creates events of the type's duration across the host's
// availability in [From, To), skipping time already taken by host events.
func (service *EventTypeService) GenerateEvents(ctx context.Context, hostID, id uuid.UUID, req *dto.GenerateEventsRequest) ([]eventDto.EventResponse, *errors.AppError) {
	if req == nil || req.From == nil || req.To == nil || req.From.IsZero() || req.To.IsZero() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "from and to are required", nil)
	}
	from, to := req.From.UTC(), req.To.UTC()
	if !to.After(from) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "to must be after from", nil)
	}
	if to.Sub(from) > constants.GenerateMaxRange {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "range is too large", nil)
	}
	if now := service.now().UTC(); from.Before(now) {
		from = now
	}
	if !to.After(from) {
		return []eventDto.EventResponse{}, nil
	}

	loc := time.UTC
	if tz := strings.TrimSpace(req.Timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown timezone", err)
		}
		loc = l
	}

	eventType, err := service.repo.GetForHost(ctx, id, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load event type", err)
	}
	if eventType == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", nil)
	}

	windows, appErr := service.windows.EnabledWindows(ctx, hostID)
	if appErr != nil {
		return nil, appErr
	}
	busy, appErr := service.events.BusyRanges(ctx, hostID, from, to)
	if appErr != nil {
		return nil, appErr
	}

	slots := service.planner.Plan(from, to, eventType.DurationMinutes, windows, busy, loc)
	logger.Info("EventTypeService:GenerateEvents:Planned",
		"host_id", hostID,
		"event_type_id", id,
		"slots", len(slots),
	)

	title := eventType.Name
	return service.events.CreateSlots(ctx, hostID, &eventType.ID, &title, slots)
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
