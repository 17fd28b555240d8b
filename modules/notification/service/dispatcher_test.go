package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-booking-api/core/constants"
	"go-booking-api/modules/notification/dto"

	"github.com/hibiken/asynq"
)

type recordingSender struct {
	mu            sync.Mutex
	confirmations []*dto.BookingNotification
	cancellations []*dto.BookingNotification
	err           error
	block         chan struct{}
	ctxErr        error
}

func (s *recordingSender) SendConfirmation(ctx context.Context, n *dto.BookingNotification) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmations = append(s.confirmations, n)
	s.ctxErr = ctx.Err()
	return s.err
}

func (s *recordingSender) SendCancellation(_ context.Context, n *dto.BookingNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancellations = append(s.cancellations, n)
	return s.err
}

func TestAsyncDispatcherOutlivesRequest(t *testing.T) {
	sender := &recordingSender{block: make(chan struct{})}
	d := NewAsyncDispatcher(sender, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	d.DispatchConfirmation(ctx, sampleNotification())
	cancel()
	close(sender.block)
	d.Wait()

	if len(sender.confirmations) != 1 {
		t.Fatalf("confirmations = %d, want 1", len(sender.confirmations))
	}
	if sender.ctxErr != nil {
		t.Fatalf("delivery context was cancelled with the request: %v", sender.ctxErr)
	}
}

func TestAsyncDispatcherSwallowsErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("provider down")}
	d := NewAsyncDispatcher(sender, 0)

	d.DispatchConfirmation(context.Background(), sampleNotification())
	d.DispatchCancellation(context.Background(), sampleNotification())
	d.DispatchConfirmation(context.Background(), nil)
	d.Wait()

	if len(sender.confirmations) != 1 || len(sender.cancellations) != 1 {
		t.Fatalf("confirmations=%d cancellations=%d", len(sender.confirmations), len(sender.cancellations))
	}
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

func TestQueueDispatcherEnqueues(t *testing.T) {
	q := &fakeEnqueuer{}
	d := NewQueueDispatcher(q)
	n := sampleNotification()

	d.DispatchConfirmation(context.Background(), n)
	d.DispatchCancellation(context.Background(), n)

	if len(q.tasks) != 2 {
		t.Fatalf("enqueued %d tasks, want 2", len(q.tasks))
	}
	if q.tasks[0].Type() != constants.TaskBookingConfirmation || q.tasks[1].Type() != constants.TaskBookingCancellation {
		t.Fatalf("types = %s, %s", q.tasks[0].Type(), q.tasks[1].Type())
	}

	var got dto.BookingNotification
	if err := json.Unmarshal(q.tasks[0].Payload(), &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.BookingID != n.BookingID || !got.StartTime.Equal(n.StartTime) || got.HostEmail != n.HostEmail {
		t.Fatalf("payload = %+v", got)
	}
}

// stalledEnqueuer blocks like an unresponsive Redis until the context ends.
type stalledEnqueuer struct {
	deadline time.Time
}

func (s *stalledEnqueuer) EnqueueContext(ctx context.Context, _ *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	s.deadline, _ = ctx.Deadline()
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestQueueDispatcherBoundsSlowRedis(t *testing.T) {
	q := &stalledEnqueuer{}
	d := NewQueueDispatcher(q)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // the request has already finished
	start := time.Now()
	d.DispatchConfirmation(ctx, sampleNotification())
	elapsed := time.Since(start)

	if q.deadline.IsZero() || q.deadline.Sub(start) > constants.EnqueueTimeout {
		t.Fatalf("enqueue deadline %s after start, want at most %s", q.deadline.Sub(start), constants.EnqueueTimeout)
	}
	if elapsed < constants.EnqueueTimeout/2 {
		t.Fatalf("enqueue returned after %s; a cancelled request should not abort the handoff", elapsed)
	}
	if elapsed > 2*constants.EnqueueTimeout {
		t.Fatalf("dispatch blocked for %s", elapsed)
	}
}

func TestQueueDispatcherEnqueueFailure(t *testing.T) {
	d := NewQueueDispatcher(&fakeEnqueuer{err: errors.New("redis: connection refused")})
	// must not panic or block
	d.DispatchConfirmation(context.Background(), sampleNotification())
}
