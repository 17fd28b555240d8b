package repository

import (
	"context"
	"testing"

	"go-booking-api/core/database/dbtest"
	"go-booking-api/modules/availability/entity"
)

func TestUpsertIsIdempotentPerDay(t *testing.T) {
	db := dbtest.Open(t)
	host := dbtest.CreateHost(t, db, "avail-host")
	repo := NewAvailabilityRepository(db)
	ctx := context.Background()

	row := &entity.Availability{HostUserID: host, DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00", Enabled: true}
	first, inserted, err := repo.Upsert(ctx, row)
	if err != nil || !inserted {
		t.Fatalf("first Upsert inserted=%v err=%v", inserted, err)
	}

	row.StartTime = "08:00"
	second, inserted, err := repo.Upsert(ctx, row)
	if err != nil || inserted {
		t.Fatalf("second Upsert inserted=%v err=%v", inserted, err)
	}
	if second.ID != first.ID || second.StartTime != "08:00" {
		t.Fatalf("second Upsert = %+v", second)
	}

	rows, err := repo.ListByHost(ctx, host)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ListByHost = %d rows (%v), want 1", len(rows), err)
	}

	if err := repo.DeleteByDay(ctx, host, 3); err != nil {
		t.Fatal(err)
	}
	rows, _ = repo.ListByHost(ctx, host)
	if len(rows) != 0 {
		t.Fatalf("after delete %d rows remain", len(rows))
	}
}
