package service

import (
	"context"
	"strings"

	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	"go-booking-api/core/utils"
	"go-booking-api/modules/availability/dto"
	"go-booking-api/modules/availability/entity"
	"go-booking-api/modules/availability/mapper"
	"go-booking-api/modules/availability/repository"

	"github.com/google/uuid"
)

type AvailabilityServiceInterface interface {
	List(ctx context.Context, hostID uuid.UUID) ([]dto.AvailabilityResponse, *errors.AppError)
	Upsert(ctx context.Context, hostID uuid.UUID, req *dto.UpsertAvailabilityRequest) (*dto.AvailabilityResponse, bool, *errors.AppError)
	Delete(ctx context.Context, hostID uuid.UUID, day int) *errors.AppError
	EnabledWindows(ctx context.Context, hostID uuid.UUID) ([]entity.Availability, *errors.AppError)
}

type AvailabilityService struct {
	repo repository.AvailabilityRepositoryInterface
}

func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

func validDay(day int) bool {
	return day >= 0 && day <= 6
}

func (service *AvailabilityService) List(ctx context.Context, hostID uuid.UUID) ([]dto.AvailabilityResponse, *errors.AppError) {
	rows, err := service.repo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load availability", err)
	}
	return mapper.ToAvailabilityResponses(rows), nil
}

// Upsert creates or replaces the window for req.DayOfWeek. The boolean is
// true when a new row was created.
func (service *AvailabilityService) Upsert(ctx context.Context, hostID uuid.UUID, req *dto.UpsertAvailabilityRequest) (*dto.AvailabilityResponse, bool, *errors.AppError) {
	if req == nil || req.DayOfWeek == nil {
		return nil, false, errors.NewAppError(errors.ErrInvalidInput, "day_of_week is required", nil)
	}
	if !validDay(*req.DayOfWeek) {
		return nil, false, errors.NewAppError(errors.ErrInvalidInput, "day_of_week must be between 0 and 6", nil)
	}

	startTime := strings.TrimSpace(req.StartTime)
	endTime := strings.TrimSpace(req.EndTime)
	if startTime == "" || endTime == "" {
		return nil, false, errors.NewAppError(errors.ErrInvalidInput, "start_time and end_time are required", nil)
	}
	start, err := utils.ParseClock(startTime)
	if err != nil {
		return nil, false, errors.NewAppError(errors.ErrInvalidInput, "start_time must be HH:MM between 00:00 and 24:00", err)
	}
	end, err := utils.ParseClock(endTime)
	if err != nil {
		return nil, false, errors.NewAppError(errors.ErrInvalidInput, "end_time must be HH:MM between 00:00 and 24:00", err)
	}
	if start >= end {
		return nil, false, errors.NewAppError(errors.ErrInvalidInput, "start_time must be before end_time", nil)
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	saved, created, err := service.repo.Upsert(ctx, &entity.Availability{
		HostUserID: hostID,
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  startTime,
		EndTime:    endTime,
		Enabled:    enabled,
	})
	if err != nil {
		logger.Error("AvailabilityService:Upsert:Error", "error", err, "host_id", hostID)
		return nil, false, errors.NewAppError(errors.ErrInternalServer, "failed to save availability", err)
	}
	return mapper.ToAvailabilityResponse(saved), created, nil
}

func (service *AvailabilityService) Delete(ctx context.Context, hostID uuid.UUID, day int) *errors.AppError {
	if !validDay(day) {
		return errors.NewAppError(errors.ErrInvalidInput, "day must be between 0 and 6", nil)
	}
	if err := service.repo.DeleteByDay(ctx, hostID, day); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete availability", err)
	}
	return nil
}

// EnabledWindows returns the host's enabled weekly windows.
func (service *AvailabilityService) EnabledWindows(ctx context.Context, hostID uuid.UUID) ([]entity.Availability, *errors.AppError) {
	rows, err := service.repo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load availability", err)
	}
	enabled := rows[:0]
	for _, row := range rows {
		if row.Enabled {
			enabled = append(enabled, row)
		}
	}
	return enabled, nil
}
