package test

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"taskapp/internal/adapter/database/sqlite"
)

// findProjectRoot walks up from this file until it finds go.mod, so tests
// can locate the migrations directory regardless of which package runs them.
func findProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)

		if parent == dir {
			break
		}

		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")
	return ""
}

// InitTestDB opens an in-memory sqlite database with the full schema applied.
func InitTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// An in-memory database exists per connection; pin the pool to one so
	// the migrated schema is visible to every query.
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	migrationsPath := filepath.Join(findProjectRoot(), "db", "migrations")

	if err := sqlite.RunMigrations(sqlDB, migrationsPath); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	db := sqlite.Wrap(sqlDB)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
