package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLiteMatrixCache is the SQLite-backed twin of SQLMatrixCache, used by
// cmd/server's single-node deployment.
type SQLiteMatrixCache struct {
	DB *sql.DB
}

func NewSQLiteMatrixCache(db *sql.DB) *SQLiteMatrixCache {
	return &SQLiteMatrixCache{DB: db}
}

func (s *SQLiteMatrixCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]float64, error) {
	if s.DB == nil {
		return nil, errors.New("matrix cache: db is nil")
	}
	if origin == "" {
		return nil, errors.New("get matrix cache: origin must not be empty")
	}

	uniq := dedupeNonEmpty(destinations)
	if len(uniq) == 0 {
		return map[string]float64{}, nil
	}

	ph := make([]string, len(uniq))
	args := make([]any, 0, 1+len(uniq))
	args = append(args, origin)
	for i, d := range uniq {
		ph[i] = "?"
		args = append(args, d)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT destination, distance_km
    FROM matrix_cache
    WHERE origin = ?
        AND destination IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get matrix cache: query matrix_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64, len(uniq))
	for rows.Next() {
		var dest string
		var km float64
		if err := rows.Scan(&dest, &km); err != nil {
			return nil, fmt.Errorf("get matrix cache: scan rows: %w", err)
		}
		out[dest] = km
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get matrix cache: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLiteMatrixCache) PutMany(ctx context.Context, origin string, distances map[string]float64) error {
	if s.DB == nil {
		return errors.New("matrix cache: db is nil")
	}
	if origin == "" {
		return errors.New("insert matrix cache: origin must not be empty")
	}
	if len(distances) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert matrix cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO matrix_cache (origin, destination, distance_km)
    VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("insert matrix cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, km := range distances {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert matrix cache: empty destination key")
		}
		if _, err := stmt.ExecContext(ctx, origin, dest, km); err != nil {
			return fmt.Errorf("insert matrix cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert matrix cache commit: %w", err)
	}

	return nil
}
