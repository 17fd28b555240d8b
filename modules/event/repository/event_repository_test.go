package repository

import (
	"context"
	"testing"
	"time"

	"go-booking-api/core/database/dbtest"
	"go-booking-api/modules/event/entity"
)

func TestListingsReflectBookings(t *testing.T) {
	db := dbtest.Open(t)
	host := dbtest.CreateHost(t, db, "events-host")
	other := dbtest.CreateHost(t, db, "other-host")
	repo := NewEventRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	past, err := repo.Create(ctx, &entity.Event{HostUserID: host, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	booked, _ := repo.Create(ctx, &entity.Event{HostUserID: host, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)})
	open, _ := repo.Create(ctx, &entity.Event{HostUserID: host, StartTime: now.Add(3 * time.Hour), EndTime: now.Add(4 * time.Hour)})
	foreign, _ := repo.Create(ctx, &entity.Event{HostUserID: other, StartTime: now.Add(5 * time.Hour), EndTime: now.Add(6 * time.Hour)})

	if err := db.ExecContext(ctx, `INSERT INTO bookings (event_id, guest_email) VALUES ($1, 'a@b.com')`, booked.ID); err != nil {
		t.Fatal(err)
	}

	available, err := repo.ListAvailable(ctx, now, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(available) != 2 || available[0].ID != open.ID || available[1].ID != foreign.ID {
		t.Fatalf("ListAvailable = %+v", available)
	}

	bySlug, _ := repo.ListAvailable(ctx, now, "events-host")
	if len(bySlug) != 1 || bySlug[0].ID != open.ID {
		t.Fatalf("ListAvailable by slug = %+v", bySlug)
	}

	hostEvents, err := repo.ListForHost(ctx, host)
	if err != nil {
		t.Fatal(err)
	}
	if len(hostEvents) != 3 {
		t.Fatalf("ListForHost = %d events, want 3", len(hostEvents))
	}
	counts := map[string]int{}
	for _, e := range hostEvents {
		counts[e.ID.String()] = e.BookingCount
	}
	if counts[booked.ID.String()] != 1 || counts[open.ID.String()] != 0 || counts[past.ID.String()] != 0 {
		t.Fatalf("booking counts = %v", counts)
	}
	if hostEvents[0].ID != open.ID {
		t.Fatalf("ListForHost not ordered by start desc: first = %s", hostEvents[0].ID)
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	db := dbtest.Open(t)
	host := dbtest.CreateHost(t, db, "owner")
	other := dbtest.CreateHost(t, db, "intruder")
	repo := NewEventRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	e, err := repo.Create(ctx, &entity.Event{HostUserID: host, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if deleted, err := repo.Delete(ctx, e.ID, other); err != nil || deleted {
		t.Fatalf("foreign Delete = %v, %v", deleted, err)
	}
	if deleted, err := repo.Delete(ctx, e.ID, host); err != nil || !deleted {
		t.Fatalf("owner Delete = %v, %v", deleted, err)
	}
}
