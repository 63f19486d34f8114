package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"vrppd-solver-core/internal/platform/obs"
)

// SQLMatrixCache is a Postgres-backed cache for pairwise Location-hash
// distances, keyed the way the teacher's distance cache keys origin ->
// destination, but against a single float64 (kilometers) rather than a
// meters/seconds pair, since distancefn.Func has no notion of duration.
type SQLMatrixCache struct {
	DB *sql.DB
}

func NewSQLMatrixCache(db *sql.DB) *SQLMatrixCache {
	return &SQLMatrixCache{DB: db}
}

// GetMany fetches cached distances for one origin hash and multiple
// destination hashes.
func (s *SQLMatrixCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]float64, err error) {
	defer obs.Time(ctx, "matrix.cache.GetMany")(&err)

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

	q := `
	SELECT destination, distance_km
    FROM matrix_cache
    WHERE origin = $1
        AND destination = ANY($2::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, origin, uniq)
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

// PutMany stores distances for a single origin hash.
func (s *SQLMatrixCache) PutMany(ctx context.Context, origin string, distances map[string]float64) error {
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
	INSERT INTO matrix_cache (origin, destination, distance_km)
    VALUES ($1, $2, $3)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_km = EXCLUDED.distance_km;
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

func dedupeNonEmpty(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
