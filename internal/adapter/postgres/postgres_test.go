package postgres

import (
	"context"
	"os"
	"testing"

	"maonav/internal/adapter/storetest"
	"maonav/internal/domain"
)

func TestMigrate_EmptyDSN(t *testing.T) {
	if err := Migrate("", "up"); err == nil {
		t.Fatal("Migrate with empty DSN should return error")
	}
}

func TestMigrate_InvalidDirection(t *testing.T) {
	for _, dir := range []string{"", "sideways", "UP", "Down"} {
		t.Run(dir, func(t *testing.T) {
			if err := Migrate("postgres://localhost/test", dir); err == nil {
				t.Errorf("Migrate with direction %q should return error", dir)
			}
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 || len(entries)%2 != 0 {
		t.Fatalf("expected paired up/down migrations, got %d files", len(entries))
	}
}

// openTestDB connects to TEST_DATABASE_URL and empties every table.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if _, err := db.sql.ExecContext(ctx,
		"TRUNCATE sessions, admins, sites, categories, settings RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if err := db.seedSettings(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func TestRepositoryContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) (storetest.Store, domain.SessionRepository) {
		db := openTestDB(t)
		return db, NewSessionRepo(db)
	})
}
