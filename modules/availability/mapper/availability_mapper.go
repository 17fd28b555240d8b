package mapper

import (
	"go-booking-api/modules/availability/dto"
	"go-booking-api/modules/availability/entity"
)

func ToAvailabilityResponse(a *entity.Availability) *dto.AvailabilityResponse {
	if a == nil {
		return nil
	}
	return &dto.AvailabilityResponse{
		ID:        a.ID,
		DayOfWeek: a.DayOfWeek,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Enabled:   a.Enabled,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToAvailabilityResponses(rows []entity.Availability) []dto.AvailabilityResponse {
	result := make([]dto.AvailabilityResponse, 0, len(rows))
	for i := range rows {
		result = append(result, *ToAvailabilityResponse(&rows[i]))
	}
	return result
}
