// Package testutil provides test helpers for setting up in-memory stores,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"testing"

	"centavo/internal/database"

	"gorm.io/gorm"
)

// SetupTestDB creates an in-memory SQLite store and brings it to the
// current schema through the real migration engine, so every service test
// also exercises the migrated shape. Each call gets its own named
// in-memory database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:centavo_test_%d?mode=memory&cache=shared", nextID())
	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test store: %v", err)
	}

	return db
}

// SetupBareTestDB creates an in-memory SQLite store without running any
// migration, for tests that build legacy schema states by hand.
func SetupBareTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:centavo_bare_%d?mode=memory&cache=shared", nextID())
	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("failed to open bare test store: %v", err)
	}
	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test store: %v", err)
	}
}
