package testutil

import (
	"database/sql"
	"os"
	"testing"

	"github.com/mstanchev/vaxtrack/internal/config"
	"github.com/mstanchev/vaxtrack/internal/db"
)

// OpenTestDB connects to the integration-test Postgres, applies
// migrations and truncates all tables. Tests that need a database skip
// when TEST_DB_HOST is unset.
func OpenTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "vaxtrack",
		Password: "vaxtrack_pass",
		DBName:   "vaxtrack_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if _, err := conn.Exec(`TRUNCATE sessions, vaccines, userinfo CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}
