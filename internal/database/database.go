package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"centavo/internal/config"
	"centavo/internal/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Store wraps the single handle to the on-device store. It is opened once
// per process by the application bootstrap and passed explicitly to every
// service; there is no hidden global handle.
type Store struct {
	db   *gorm.DB
	path string
}

// Open opens (or creates) the store file. An open failure is unrecoverable
// and returned to the caller; the app cannot proceed without a store.
// Migrate must be called on the result before any consumer reads or writes.
func Open(cfg *config.Config) (*Store, error) {
	if dir := filepath.Dir(cfg.StorePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := Connect(cfg.StorePath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, path: cfg.StorePath}, nil
}

// Connect opens a gorm handle on the given store path with the connection
// discipline the core relies on: a single write connection, so all
// statements serialize on it and there is no partial-write visibility.
func Connect(path string) (*gorm.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate brings the store to the current schema. Recoverable per-step
// failures are logged inside the engine and never returned.
func (s *Store) Migrate() error {
	logger.Get().Infow("running store migration", "path", s.path)
	if err := Migrate(s.db); err != nil {
		return err
	}
	logger.Get().Info("store migration completed")
	return nil
}

// DB returns the underlying GORM database instance
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the store handle. Best-effort: every statement commits
// independently, so correctness does not depend on a clean close.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
