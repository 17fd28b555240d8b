package mapper

import (
	"go-booking-api/modules/eventtype/dto"
	"go-booking-api/modules/eventtype/entity"
)

func ToEventTypeResponse(et *entity.EventType) *dto.EventTypeResponse {
	if et == nil {
		return nil
	}
	return &dto.EventTypeResponse{
		ID:              et.ID,
		Name:            et.Name,
		DurationMinutes: et.DurationMinutes,
		Description:     et.Description,
		Color:           et.Color,
		CreatedAt:       et.CreatedAt,
		UpdatedAt:       et.UpdatedAt,
	}
}

func ToEventTypeResponses(rows []entity.EventType) []dto.EventTypeResponse {
	result := make([]dto.EventTypeResponse, 0, len(rows))
	for i := range rows {
		result = append(result, *ToEventTypeResponse(&rows[i]))
	}
	return result
}
