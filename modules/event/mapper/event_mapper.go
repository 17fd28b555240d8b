package mapper

import (
	"go-booking-api/modules/event/dto"
	"go-booking-api/modules/event/entity"
)

func ToEventResponse(e *entity.Event, status string) *dto.EventResponse {
	if e == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:          e.ID,
		HostUserID:  e.HostUserID,
		EventTypeID: e.EventTypeID,
		StartTime:   e.StartTime.UTC(),
		EndTime:     e.EndTime.UTC(),
		Title:       e.Title,
		Description: e.Description,
		Status:      status,
		CreatedAt:   e.CreatedAt,
	}
}

// ToPublicEventResponses maps unbooked events; they are available by definition.
func ToPublicEventResponses(events []entity.Event) []dto.EventResponse {
	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *ToEventResponse(&events[i], entity.StatusAvailable))
	}
	return result
}

func ToHostEventResponses(events []entity.HostEvent) []dto.EventResponse {
	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp := ToEventResponse(&events[i].Event, events[i].Status())
		count := events[i].BookingCount
		resp.BookingCount = &count
		result = append(result, *resp)
	}
	return result
}
