package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path string
}

// Open opens an existing SQLite file for reading.
// The tables are loaded once at startup, so a single connection is enough.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	// sql.Open would silently create a missing file
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("failed to stat database %s: %w", cfg.Path, err)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA query_only=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set query_only: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Path, err)
	}

	return db, nil
}
