package database

import (
	"context"
	"testing"

	"github.com/onurcolak/emergency-alert-service/environments"
)

var memoryConfig = environments.DatabaseConfig{Driver: DriverSQLite, DSN: ":memory:"}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	_, err := NewDB(environments.DatabaseConfig{Driver: "oracle"})
	if err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestRunMigrationsAndSeed_SQLite(t *testing.T) {
	db, err := NewDB(memoryConfig)
	if err != nil {
		t.Fatalf("NewDB returned error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations returned error: %v", err)
	}
	// idempotent
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second RunMigrations returned error: %v", err)
	}

	ctx := context.Background()

	seeded, err := SeedTestData(ctx, db, "demo")
	if err != nil {
		t.Fatalf("SeedTestData returned error: %v", err)
	}
	if seeded != 3 {
		t.Fatalf("expected 3 seeded contacts, got %d", seeded)
	}

	seeded, err = SeedTestData(ctx, db, "demo")
	if err != nil {
		t.Fatalf("second SeedTestData returned error: %v", err)
	}
	if seeded != 0 {
		t.Fatalf("expected seed to be skipped on non-empty table, got %d", seeded)
	}

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM contacts WHERE user_id = ?", "demo"); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rows, got %d", count)
	}
}
