package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/ports"
)

// PostgresRunRepository is the Postgres-backed ports.RunRepository used by
// a multi-node deployment (cmd/dbtool owns its schema).
type PostgresRunRepository struct {
	DB *sql.DB
}

func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{DB: db}
}

func (r *PostgresRunRepository) SaveRun(ctx context.Context, run ports.RunRecord) error {
	if r.DB == nil {
		return errors.New("run repository: db is nil")
	}

	problemJSON, exactJSON, heuristicJSON, configJSON, historyJSON, err := marshalRun(run)
	if err != nil {
		return err
	}

	q := `
	INSERT INTO runs (id, created_at, target, problem_json, exact_solution_json, heuristic_solution_json, config_json, history_json)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET created_at = EXCLUDED.created_at,
		target = EXCLUDED.target,
		problem_json = EXCLUDED.problem_json,
		exact_solution_json = EXCLUDED.exact_solution_json,
		heuristic_solution_json = EXCLUDED.heuristic_solution_json,
		config_json = EXCLUDED.config_json,
		history_json = EXCLUDED.history_json;
	`

	if _, err := r.DB.ExecContext(ctx, q,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339Nano), string(run.Target),
		problemJSON, exactJSON, heuristicJSON, configJSON, historyJSON,
	); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}

	return nil
}

func (r *PostgresRunRepository) GetRun(ctx context.Context, id string) (ports.RunRecord, error) {
	if r.DB == nil {
		return ports.RunRecord{}, errors.New("run repository: db is nil")
	}

	q := `
	SELECT created_at, target, problem_json, exact_solution_json, heuristic_solution_json, config_json, history_json
	FROM runs
	WHERE id = $1;
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

func marshalRun(run ports.RunRecord) (problemJSON string, exactJSON, heuristicJSON, configJSON, historyJSON sql.NullString, err error) {
	p, err := json.Marshal(run.Problem)
	if err != nil {
		return "", sql.NullString{}, sql.NullString{}, sql.NullString{}, sql.NullString{}, fmt.Errorf("marshal problem: %w", err)
	}
	problemJSON = string(p)

	if run.ExactSolution != nil {
		b, err := json.Marshal(run.ExactSolution)
		if err != nil {
			return "", sql.NullString{}, sql.NullString{}, sql.NullString{}, sql.NullString{}, fmt.Errorf("marshal exact solution: %w", err)
		}
		exactJSON = sql.NullString{String: string(b), Valid: true}
	}

	if run.HeuristicSolution != nil {
		b, err := json.Marshal(run.HeuristicSolution)
		if err != nil {
			return "", sql.NullString{}, sql.NullString{}, sql.NullString{}, sql.NullString{}, fmt.Errorf("marshal heuristic solution: %w", err)
		}
		heuristicJSON = sql.NullString{String: string(b), Valid: true}
	}

	if run.Config != nil {
		b, err := json.Marshal(run.Config)
		if err != nil {
			return "", sql.NullString{}, sql.NullString{}, sql.NullString{}, sql.NullString{}, fmt.Errorf("marshal config: %w", err)
		}
		configJSON = sql.NullString{String: string(b), Valid: true}
	}

	if len(run.History) > 0 {
		b, err := json.Marshal(run.History)
		if err != nil {
			return "", sql.NullString{}, sql.NullString{}, sql.NullString{}, sql.NullString{}, fmt.Errorf("marshal history: %w", err)
		}
		historyJSON = sql.NullString{String: string(b), Valid: true}
	}

	return problemJSON, exactJSON, heuristicJSON, configJSON, historyJSON, nil
}

func unmarshalRun(id, createdAtRaw, target, problemJSON string, exactJSON, heuristicJSON, configJSON, historyJSON sql.NullString) (ports.RunRecord, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtRaw)
	if err != nil {
		return ports.RunRecord{}, fmt.Errorf("get run %s: parse created_at: %w", id, err)
	}

	var problem domain.Problem
	if err := json.Unmarshal([]byte(problemJSON), &problem); err != nil {
		return ports.RunRecord{}, fmt.Errorf("get run %s: unmarshal problem: %w", id, err)
	}

	run := ports.RunRecord{
		ID:        id,
		CreatedAt: createdAt,
		Target:    domain.Target(target),
		Problem:   problem,
	}

	if exactJSON.Valid {
		var sol domain.AlgorithmSolution
		if err := json.Unmarshal([]byte(exactJSON.String), &sol); err != nil {
			return ports.RunRecord{}, fmt.Errorf("get run %s: unmarshal exact solution: %w", id, err)
		}
		run.ExactSolution = &sol
	}

	if heuristicJSON.Valid {
		var sol domain.ProblemSolution
		if err := json.Unmarshal([]byte(heuristicJSON.String), &sol); err != nil {
			return ports.RunRecord{}, fmt.Errorf("get run %s: unmarshal heuristic solution: %w", id, err)
		}
		run.HeuristicSolution = &sol
	}

	if configJSON.Valid {
		var cfg ports.HeuristicConfig
		if err := json.Unmarshal([]byte(configJSON.String), &cfg); err != nil {
			return ports.RunRecord{}, fmt.Errorf("get run %s: unmarshal config: %w", id, err)
		}
		run.Config = &cfg
	}

	if historyJSON.Valid {
		var history []ports.ConvergencePoint
		if err := json.Unmarshal([]byte(historyJSON.String), &history); err != nil {
			return ports.RunRecord{}, fmt.Errorf("get run %s: unmarshal history: %w", id, err)
		}
		run.History = history
	}

	return run, nil
}
