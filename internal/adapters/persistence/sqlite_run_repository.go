package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vrppd-solver-core/internal/ports"
)

// SQLiteRunRepository is the single-node ports.RunRepository used by
// cmd/server.
type SQLiteRunRepository struct {
	DB *sql.DB
}

func NewSQLiteRunRepository(db *sql.DB) *SQLiteRunRepository {
	return &SQLiteRunRepository{DB: db}
}

func (r *SQLiteRunRepository) SaveRun(ctx context.Context, run ports.RunRecord) error {
	if r.DB == nil {
		return errors.New("run repository: db is nil")
	}

	problemJSON, exactJSON, heuristicJSON, configJSON, historyJSON, err := marshalRun(run)
	if err != nil {
		return err
	}

	q := `
	INSERT OR REPLACE INTO runs (
		id, created_at, target, problem_json, exact_solution_json, heuristic_solution_json, config_json, history_json
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`

	if _, err := r.DB.ExecContext(ctx, q,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339Nano), string(run.Target),
		problemJSON, exactJSON, heuristicJSON, configJSON, historyJSON,
	); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}

	return nil
}

func (r *SQLiteRunRepository) GetRun(ctx context.Context, id string) (ports.RunRecord, error) {
	if r.DB == nil {
		return ports.RunRecord{}, errors.New("run repository: db is nil")
	}

	q := `
	SELECT created_at, target, problem_json, exact_solution_json, heuristic_solution_json, config_json, history_json
	FROM runs
	WHERE id = ?;
	`

	var createdAtRaw, target, problemJSON string
	var exactJSON, heuristicJSON, configJSON, historyJSON sql.NullString

	err := r.DB.QueryRowContext(ctx, q, id).Scan(&createdAtRaw, &target, &problemJSON, &exactJSON, &heuristicJSON, &configJSON, &historyJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RunRecord{}, ports.ErrRunNotFound
	}
	if err != nil {
		return ports.RunRecord{}, fmt.Errorf("get run %s: %w", id, err)
	}

	return unmarshalRun(id, createdAtRaw, target, problemJSON, exactJSON, heuristicJSON, configJSON, historyJSON)
}
