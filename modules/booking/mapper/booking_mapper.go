package mapper

import (
	"go-booking-api/modules/booking/dto"
	"go-booking-api/modules/booking/entity"
	notificationDto "go-booking-api/modules/notification/dto"
)

func ToBookingResponse(b *entity.Booking) *dto.BookingResponse {
	if b == nil {
		return nil
	}
	return &dto.BookingResponse{
		ID:         b.ID,
		EventID:    b.EventID,
		GuestEmail: b.GuestEmail,
		GuestName:  b.GuestName,
		Notes:      b.Notes,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}
}

func ToHostBookingResponses(bookings []entity.HostBooking) []dto.HostBookingResponse {
	result := make([]dto.HostBookingResponse, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		result = append(result, dto.HostBookingResponse{
			BookingResponse: *ToBookingResponse(&b.Booking),
			StartTime:       b.StartTime.UTC(),
			EndTime:         b.EndTime.UTC(),
			EventTitle:      b.EventTitle,
		})
	}
	return result
}

func ToBookingNotification(v *entity.ConfirmationView) *notificationDto.BookingNotification {
	if v == nil {
		return nil
	}
	return &notificationDto.BookingNotification{
		BookingID:        v.BookingID,
		EventID:          v.EventID,
		EventTitle:       deref(v.EventTitle),
		EventDescription: deref(v.EventDescription),
		StartTime:        v.StartTime.UTC(),
		EndTime:          v.EndTime.UTC(),
		GuestEmail:       v.GuestEmail,
		GuestName:        deref(v.GuestName),
		Notes:            deref(v.Notes),
		HostEmail:        v.HostEmail,
		HostName:         v.HostName,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
