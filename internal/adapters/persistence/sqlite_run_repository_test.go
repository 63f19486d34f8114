package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/ports"
)

func newTestSQLiteRunRepository(t *testing.T) *SQLiteRunRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	return NewSQLiteRunRepository(db)
}

func TestSQLiteRunRepositorySaveThenGetRoundTrips(t *testing.T) {
	repo := newTestSQLiteRunRepository(t)
	ctx := context.Background()

	run := ports.RunRecord{
		ID:        "run-1",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Target:    domain.TargetDistance,
		Problem: domain.Problem{
			Vehicles: []domain.Vehicle{{ID: 1, Start: domain.NewLocation(0, 0)}},
			Orders: []domain.Order{
				{ID: 1, Pickup: domain.NewLocation(0, 0), Delivery: domain.NewLocation(1, 1), LoadFactor: 1},
			},
			MaxTotalDistance: 100,
		},
		Config: &ports.HeuristicConfig{
			InitialTemp:   1500,
			CoolingRate:   0.99,
			MinTemp:       0.1,
			MaxIterations: 10000,
			BatchSize:     50,
			SyncInterval:  200,
			Weights:       ports.HeuristicWeights{Shift: 0.4, Swap: 0.3, Shuffle: 0.3},
		},
	}

	if err := repo.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	got, err := repo.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}

	if got.ID != run.ID || got.Target != run.Target {
		t.Errorf("GetRun() = %+v, want ID/Target matching %+v", got, run)
	}
	if len(got.Problem.Vehicles) != 1 || len(got.Problem.Orders) != 1 {
		t.Errorf("GetRun() Problem = %+v, want round-tripped vehicles/orders", got.Problem)
	}
	if got.Config == nil || got.Config.InitialTemp != 1500 {
		t.Fatalf("GetRun() Config = %+v, want a round-tripped non-nil config", got.Config)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("GetRun() CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestSQLiteRunRepositoryGetMissingRunReturnsSentinel(t *testing.T) {
	repo := newTestSQLiteRunRepository(t)
	_, err := repo.GetRun(context.Background(), "does-not-exist")
	if !errors.Is(err, ports.ErrRunNotFound) {
		t.Fatalf("GetRun() error = %v, want ErrRunNotFound", err)
	}
}
