package config

import (
	"context"
	"fmt"

	"work-tracker/internal/repository/sqlite"
)

// CreateRepository opens the configured database and applies pending migrations
func CreateRepository(ctx context.Context, config *Config) (*sqlite.SQLiteRepository, error) {
	repo, err := sqlite.Open(ctx, sqlite.Options{
		Path:        config.Database.Path,
		BusyTimeout: config.Database.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (*sqlite.SQLiteRepository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
