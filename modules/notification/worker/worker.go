// Package worker runs queued booking notifications.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"go-booking-api/core/constants"
	"go-booking-api/core/logger"
	"go-booking-api/modules/notification/dto"
	"go-booking-api/modules/notification/service"

	"github.com/hibiken/asynq"
)

type NotificationHandler struct {
	sender service.Sender
}

func NewNotificationHandler(sender service.Sender) *NotificationHandler {
	return &NotificationHandler{sender: sender}
}

// NewServeMux routes notification task types to the sender.
func NewServeMux(sender service.Sender) *asynq.ServeMux {
	h := NewNotificationHandler(sender)
	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskBookingConfirmation, h.HandleConfirmation)
	mux.HandleFunc(constants.TaskBookingCancellation, h.HandleCancellation)
	return mux
}

func (h *NotificationHandler) HandleConfirmation(ctx context.Context, task *asynq.Task) error {
	n, err := decode(task)
	if err != nil {
		return err
	}
	logger.Info("Worker:BookingConfirmation:Start", "booking_id", n.BookingID)
	return h.sender.SendConfirmation(ctx, n)
}

func (h *NotificationHandler) HandleCancellation(ctx context.Context, task *asynq.Task) error {
	n, err := decode(task)
	if err != nil {
		return err
	}
	logger.Info("Worker:BookingCancellation:Start", "booking_id", n.BookingID)
	return h.sender.SendCancellation(ctx, n)
}

func decode(task *asynq.Task) (*dto.BookingNotification, error) {
	var n dto.BookingNotification
	if err := json.Unmarshal(task.Payload(), &n); err != nil {
		return nil, fmt.Errorf("decode %s payload: %v: %w", task.Type(), err, asynq.SkipRetry)
	}
	return &n, nil
}
