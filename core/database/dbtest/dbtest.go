// Package dbtest opens a migrated Postgres database for integration tests.
package dbtest

import (
	"context"
	"os"
	"testing"

	"go-booking-api/core/database"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Open connects to TEST_DATABASE_URL, applies migrations and truncates all
// tables. The test is skipped when the variable is unset.
func Open(t *testing.T) *database.Database {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	sqlxDB, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	db := database.New(sqlxDB)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.ExecContext(ctx, `TRUNCATE bookings, events, availability, event_types, oauth_states, users CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

// CreateHost inserts a user and returns its id.
func CreateHost(t *testing.T, db *database.Database, slug string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := db.GetContext(context.Background(), &id,
		`INSERT INTO users (email, name, slug) VALUES ($1, $2, $3) RETURNING id`,
		slug+"@example.com", slug, slug)
	if err != nil {
		t.Fatalf("create host: %v", err)
	}
	return id
}
