package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trailblazer-service/internal/platform/db"
)

var sqliteSchema = []string{
	// AUTOINCREMENT keeps ids from being reused after a row is removed by an administrator.
	`
	CREATE TABLE IF NOT EXISTS parks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		external_code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL CHECK (name <> ''),
		region TEXT NOT NULL,
		lat REAL,
		lon REAL,
		description TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		designation TEXT NOT NULL DEFAULT '',
		CHECK ((lat IS NULL) = (lon IS NULL))
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_parks_located
	ON parks(id) WHERE lat IS NOT NULL AND lon IS NOT NULL;
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS parks (
		id BIGSERIAL PRIMARY KEY,
		external_code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL CHECK (name <> ''),
		region TEXT NOT NULL,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		description TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		designation TEXT NOT NULL DEFAULT '',
		CHECK ((lat IS NULL) = (lon IS NULL))
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_parks_located
	ON parks(id) WHERE lat IS NOT NULL AND lon IS NOT NULL;
	`,
}

// Initialize the parks schema for the given driver. Safe to run repeatedly.
func InitSchema(ctx context.Context, conn *sql.DB, driver string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch driver {
	case db.DriverSQLite:
		statements = sqliteSchema
	case db.DriverPostgres:
		statements = postgresSchema
	default:
		return fmt.Errorf("init schema: unsupported driver %q", driver)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
