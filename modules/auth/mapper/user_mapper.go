package mapper

import (
	"go-booking-api/modules/auth/dto"
	"go-booking-api/modules/auth/entity"
)

func ToUserResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Slug:            user.Slug,
		GoogleConnected: user.GoogleConnected(),
		CreatedAt:       user.CreatedAt,
	}
}
