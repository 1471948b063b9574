package main

import (
	"fmt"
	"os"
	"strings"

	"centavo/internal/config"
	"centavo/internal/database"
	"centavo/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run() error {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Get().Warnf("store close error: %v", err)
		}
	}()

	switch command {
	case "up":
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

	case "status":
		db := store.DB()
		for _, table := range database.ExpectedTables() {
			exists, err := database.TableExists(db, table)
			if err != nil {
				return fmt.Errorf("failed to inspect %s: %w", table, err)
			}
			if !exists {
				logger.Get().Infof("%-32s missing", table)
				continue
			}
			cols, err := database.TableColumns(db, table)
			if err != nil {
				return fmt.Errorf("failed to inspect %s: %w", table, err)
			}
			logger.Get().Infof("%-32s %d columns: %s", table, len(cols), strings.Join(cols, ", "))
		}

	default:
		return fmt.Errorf("unknown command: %s (use up or status)", command)
	}

	return nil
}
