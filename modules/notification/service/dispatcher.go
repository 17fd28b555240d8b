package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go-booking-api/core/constants"
	"go-booking-api/core/logger"
	"go-booking-api/modules/notification/dto"

	"github.com/hibiken/asynq"
)

// Dispatcher hands booking notifications to background delivery. Calls
// return immediately and never report delivery failures to the caller.
type Dispatcher interface {
	DispatchConfirmation(ctx context.Context, n *dto.BookingNotification)
	DispatchCancellation(ctx context.Context, n *dto.BookingNotification)
}

// AsyncDispatcher delivers in a detached goroutine of this process.
type AsyncDispatcher struct {
	sender  Sender
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsyncDispatcher(sender Sender, timeout time.Duration) *AsyncDispatcher {
	if timeout <= 0 {
		timeout = constants.NotificationTimeout
	}
	return &AsyncDispatcher{sender: sender, timeout: timeout}
}

func (d *AsyncDispatcher) DispatchConfirmation(ctx context.Context, n *dto.BookingNotification) {
	d.run(ctx, "Confirmation", n, d.sender.SendConfirmation)
}

func (d *AsyncDispatcher) DispatchCancellation(ctx context.Context, n *dto.BookingNotification) {
	d.run(ctx, "Cancellation", n, d.sender.SendCancellation)
}

func (d *AsyncDispatcher) run(parent context.Context, kind string, n *dto.BookingNotification, send func(context.Context, *dto.BookingNotification) error) {
	if n == nil {
		return
	}
	// outlive the request that triggered us
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), d.timeout)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("NotificationDispatcher:"+kind+":Panic", "panic", r, "booking_id", n.BookingID)
			}
		}()

		if err := send(ctx, n); err != nil {
			logger.Error("NotificationDispatcher:"+kind+":Error", "error", err, "booking_id", n.BookingID)
		}
	}()
}

// Wait blocks until every dispatched notification has finished.
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}

// Enqueuer is the part of *asynq.Client the queue dispatcher uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDispatcher enqueues notifications for the worker process. Tasks are
// never retried.
type QueueDispatcher struct {
	client Enqueuer
}

func NewQueueDispatcher(client Enqueuer) *QueueDispatcher {
	return &QueueDispatcher{client: client}
}

func (d *QueueDispatcher) DispatchConfirmation(ctx context.Context, n *dto.BookingNotification) {
	d.enqueue(ctx, constants.TaskBookingConfirmation, n)
}

func (d *QueueDispatcher) DispatchCancellation(ctx context.Context, n *dto.BookingNotification) {
	d.enqueue(ctx, constants.TaskBookingCancellation, n)
}

func (d *QueueDispatcher) enqueue(parent context.Context, taskType string, n *dto.BookingNotification) {
	if n == nil {
		return
	}
	task, err := NewNotificationTask(taskType, n)
	if err != nil {
		logger.Error("NotificationDispatcher:Enqueue:Encode:Error", "error", err, "type", taskType)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), constants.EnqueueTimeout)
	defer cancel()

	info, err := d.client.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error("NotificationDispatcher:Enqueue:Error", "error", err, "type", taskType, "booking_id", n.BookingID)
		return
	}
	logger.Debug("NotificationDispatcher:Enqueued", "type", taskType, "task_id", info.ID, "booking_id", n.BookingID)
}

// NewNotificationTask encodes n as a single-attempt task on the
// notifications queue.
func NewNotificationTask(taskType string, n *dto.BookingNotification) (*asynq.Task, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}
	return asynq.NewTask(taskType, payload,
		asynq.Queue(constants.QueueNotifications),
		asynq.MaxRetry(0),
		asynq.Timeout(constants.NotificationTimeout),
	), nil
}
