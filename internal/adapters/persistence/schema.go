// Package persistence holds the concrete ports.RunRepository adapters
// (Postgres and SQLite) plus shared schema initialization, mirroring the
// teacher's repositories package.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the tables this service needs if they don't already
// exist. The DDL is intentionally portable SQL usable against both the
// Postgres (cmd/dbtool) and SQLite (cmd/server) backends.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		target TEXT NOT NULL,
		problem_json TEXT NOT NULL,
		exact_solution_json TEXT,
		heuristic_solution_json TEXT,
		config_json TEXT,
		history_json TEXT
	);
	`

	createMatrixCacheQuery := `
	CREATE TABLE IF NOT EXISTS matrix_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km REAL NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_matrix_cache_destination_origin
	ON matrix_cache(destination, origin);
	`

	statements := []string{createRunsQuery, createMatrixCacheQuery, createIndexQuery}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
