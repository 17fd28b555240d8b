package service

import (
	"context"
	"testing"
	"time"

	"go-booking-api/core/errors"
	"go-booking-api/core/utils"
	"go-booking-api/modules/event/dto"
	"go-booking-api/modules/event/entity"

	"github.com/google/uuid"
)

type fakeEventRepo struct {
	events     map[uuid.UUID]entity.Event
	eventTypes map[uuid.UUID]struct {
		host    uuid.UUID
		minutes int
	}
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[uuid.UUID]entity.Event),
		eventTypes: make(map[uuid.UUID]struct {
			host    uuid.UUID
			minutes int
		}),
	}
}

func (r *fakeEventRepo) addEventType(host uuid.UUID, minutes int) uuid.UUID {
	id := uuid.New()
	r.eventTypes[id] = struct {
		host    uuid.UUID
		minutes int
	}{host, minutes}
	return id
}

func (r *fakeEventRepo) ListAvailable(_ context.Context, now time.Time, _ string) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range r.events {
		if e.StartTime.After(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListForHost(_ context.Context, hostID uuid.UUID) ([]entity.HostEvent, error) {
	var out []entity.HostEvent
	for _, e := range r.events {
		if e.HostUserID == hostID {
			out = append(out, entity.HostEvent{Event: e})
		}
	}
	return out, nil
}

func (r *fakeEventRepo) GetForHost(_ context.Context, id, hostID uuid.UUID) (*entity.Event, error) {
	e, ok := r.events[id]
	if !ok || e.HostUserID != hostID {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeEventRepo) EventTypeDuration(_ context.Context, id, hostID uuid.UUID) (int, bool, error) {
	et, ok := r.eventTypes[id]
	if !ok || et.host != hostID {
		return 0, false, nil
	}
	return et.minutes, true, nil
}

func (r *fakeEventRepo) Create(_ context.Context, e *entity.Event) (*entity.Event, error) {
	row := *e
	row.ID = uuid.New()
	row.CreatedAt = time.Now()
	r.events[row.ID] = row
	return &row, nil
}

func (r *fakeEventRepo) CreateBatch(ctx context.Context, events []entity.Event) ([]entity.Event, error) {
	out := make([]entity.Event, 0, len(events))
	for i := range events {
		row, _ := r.Create(ctx, &events[i])
		out = append(out, *row)
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *entity.Event) (*entity.HostEvent, error) {
	if _, ok := r.events[e.ID]; !ok {
		return nil, nil
	}
	r.events[e.ID] = *e
	return &entity.HostEvent{Event: *e}, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id, hostID uuid.UUID) (bool, error) {
	e, ok := r.events[id]
	if !ok || e.HostUserID != hostID {
		return false, nil
	}
	delete(r.events, id)
	return true, nil
}

func (r *fakeEventRepo) BusyRanges(_ context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.TimeRange, error) {
	var out []entity.TimeRange
	window := entity.TimeRange{Start: from, End: to}
	for _, e := range r.events {
		tr := entity.TimeRange{Start: e.StartTime, End: e.EndTime}
		if e.HostUserID == hostID && tr.Overlaps(window) {
			out = append(out, tr)
		}
	}
	return out, nil
}

func ts(unix int64) *utils.Timestamp {
	return &utils.Timestamp{Time: time.Unix(unix, 0).UTC()}
}

func TestCreateEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	host := uuid.New()
	ctx := context.Background()

	event, appErr := svc.Create(ctx, host, &dto.CreateEventRequest{StartTime: ts(1700000000), EndTime: ts(1700003600)})
	if appErr != nil {
		t.Fatalf("Create: %v", appErr)
	}
	if event.Status != entity.StatusAvailable || event.EndTime.Sub(event.StartTime) != time.Hour {
		t.Fatalf("event = %+v", event)
	}
}

func TestCreateEventFromEventType(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	host := uuid.New()
	typeID := repo.addEventType(host, 45)

	event, appErr := svc.Create(context.Background(), host, &dto.CreateEventRequest{EventTypeID: &typeID, StartTime: ts(1700000000)})
	if appErr != nil {
		t.Fatalf("Create: %v", appErr)
	}
	if got := event.EndTime.Sub(event.StartTime); got != 45*time.Minute {
		t.Fatalf("duration = %s, want 45m", got)
	}
}

func TestCreateEventValidation(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	host := uuid.New()
	foreignType := repo.addEventType(uuid.New(), 30)

	tests := []struct {
		name string
		req  dto.CreateEventRequest
	}{
		{"missing start", dto.CreateEventRequest{EndTime: ts(1700003600)}},
		{"missing end", dto.CreateEventRequest{StartTime: ts(1700000000)}},
		{"end before start", dto.CreateEventRequest{StartTime: ts(1700003600), EndTime: ts(1700000000)}},
		{"foreign event type", dto.CreateEventRequest{EventTypeID: &foreignType, StartTime: ts(1700000000)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, appErr := svc.Create(context.Background(), host, &tt.req); appErr == nil || appErr.Code != errors.ErrInvalidInput {
				t.Fatalf("Create = %v, want invalid input", appErr)
			}
		})
	}
}

func TestUpdateEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	host := uuid.New()
	ctx := context.Background()
	created, _ := svc.Create(ctx, host, &dto.CreateEventRequest{StartTime: ts(1700000000), EndTime: ts(1700003600)})

	if _, appErr := svc.Update(ctx, host, created.ID, &dto.UpdateEventRequest{}); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("empty update = %v, want invalid input", appErr)
	}

	title := "  Intro call "
	updated, appErr := svc.Update(ctx, host, created.ID, &dto.UpdateEventRequest{Title: &title})
	if appErr != nil {
		t.Fatalf("Update: %v", appErr)
	}
	if updated.Title == nil || *updated.Title != "Intro call" || !updated.StartTime.Equal(created.StartTime) {
		t.Fatalf("updated = %+v", updated)
	}

	if _, appErr := svc.Update(ctx, host, created.ID, &dto.UpdateEventRequest{EndTime: ts(1699990000)}); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("inverted range = %v, want invalid input", appErr)
	}

	if _, appErr := svc.Update(ctx, uuid.New(), created.ID, &dto.UpdateEventRequest{Title: &title}); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("foreign update = %v, want not found", appErr)
	}
}

func TestDeleteEventNotOwned(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	host := uuid.New()
	ctx := context.Background()
	created, _ := svc.Create(ctx, host, &dto.CreateEventRequest{StartTime: ts(1700000000), EndTime: ts(1700003600)})

	if appErr := svc.Delete(ctx, uuid.New(), created.ID); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("foreign delete = %v, want not found", appErr)
	}
	if appErr := svc.Delete(ctx, host, created.ID); appErr != nil {
		t.Fatalf("Delete: %v", appErr)
	}
}

func TestListAvailableUsesClock(t *testing.T) {
	repo := newFakeEventRepo()
	host := uuid.New()
	svc := NewEventService(repo).WithClock(func() time.Time { return time.Unix(1700001000, 0) })
	ctx := context.Background()
	_, _ = svc.Create(ctx, host, &dto.CreateEventRequest{StartTime: ts(1700000000), EndTime: ts(1700003600)})
	_, _ = svc.Create(ctx, host, &dto.CreateEventRequest{StartTime: ts(1700007200), EndTime: ts(1700010800)})

	events, appErr := svc.ListAvailable(ctx, "")
	if appErr != nil {
		t.Fatal(appErr)
	}
	if len(events) != 1 || events[0].StartTime.Unix() != 1700007200 {
		t.Fatalf("ListAvailable = %+v", events)
	}
}
