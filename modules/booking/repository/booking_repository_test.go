package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-booking-api/core/database"
	"go-booking-api/core/database/dbtest"
	"go-booking-api/modules/booking/entity"

	"github.com/google/uuid"
)

func createEvent(t *testing.T, db *database.Database, host uuid.UUID, start time.Time, title string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := db.GetContext(context.Background(), &id,
		`INSERT INTO events (host_user_id, start_time, end_time, title) VALUES ($1, $2, $3, $4) RETURNING id`,
		host, start, start.Add(time.Hour), title)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return id
}

func TestConcurrentBookingsClaimOnce(t *testing.T) {
	db := dbtest.Open(t)
	host := dbtest.CreateHost(t, db, "race-host")
	eventID := createEvent(t, db, host, time.Now().Add(time.Hour), "Race")
	repo := NewBookingRepository(db)

	const attempts = 16
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		violations int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), &entity.Booking{EventID: eventID, GuestEmail: "g@example.com"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case database.IsUniqueViolation(err):
				violations++
			default:
				t.Errorf("Create: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || violations != attempts-1 {
		t.Fatalf("successes=%d violations=%d", successes, violations)
	}
}

func TestConfirmationViewAndCancel(t *testing.T) {
	db := dbtest.Open(t)
	host := dbtest.CreateHost(t, db, "view-host")
	other := dbtest.CreateHost(t, db, "view-other")
	start := time.Date(2030, 6, 3, 9, 0, 0, 0, time.UTC)
	eventID := createEvent(t, db, host, start, "Intro call")
	repo := NewBookingRepository(db)
	ctx := context.Background()

	exists, err := repo.EventExists(ctx, eventID)
	if err != nil || !exists {
		t.Fatalf("EventExists = %v, %v", exists, err)
	}
	if exists, _ := repo.EventExists(ctx, uuid.New()); exists {
		t.Fatal("unknown event reported as existing")
	}

	name := "Grace"
	b, err := repo.Create(ctx, &entity.Booking{EventID: eventID, GuestEmail: "g@example.com", GuestName: &name})
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != entity.StatusConfirmed {
		t.Fatalf("status = %q", b.Status)
	}

	view, err := repo.GetConfirmationView(ctx, b.ID)
	if err != nil || view == nil {
		t.Fatalf("GetConfirmationView = %v, %v", view, err)
	}
	if view.HostEmail != "view-host@example.com" || view.HostUserID != host || *view.EventTitle != "Intro call" || !view.StartTime.Equal(start) {
		t.Fatalf("view = %+v", view)
	}

	list, err := repo.ListByHost(ctx, host)
	if err != nil || len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("ListByHost = %+v, %v", list, err)
	}
	if list, _ := repo.ListByHost(ctx, other); len(list) != 0 {
		t.Fatalf("other host sees %d bookings", len(list))
	}

	if deleted, err := repo.DeleteForHost(ctx, b.ID, other); err != nil || deleted {
		t.Fatalf("foreign DeleteForHost = %v, %v", deleted, err)
	}
	if deleted, err := repo.DeleteForHost(ctx, b.ID, host); err != nil || !deleted {
		t.Fatalf("DeleteForHost = %v, %v", deleted, err)
	}
	if _, err := repo.Create(ctx, &entity.Booking{EventID: eventID, GuestEmail: "h@example.com"}); err != nil {
		t.Fatalf("rebook: %v", err)
	}
}
