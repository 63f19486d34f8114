package ports

import (
	"context"
	"errors"
	"time"

	"vrppd-solver-core/internal/domain"
)

// ErrRunNotFound is returned by RunRepository.GetRun when no run with the
// given ID has been saved.
var ErrRunNotFound = errors.New("vrppd: run not found")

// ConvergencePoint is one entry in the PSA coordinator's convergence
// history (spec.md §4.3): a timestamped improvement of the global best.
type ConvergencePoint struct {
	ElapsedMs      int64
	TotalIterations int64
	TotalDistance  float64
	TotalPrice     float64
	EmptyDistance  float64
}

// HeuristicWeights mirrors psa.Weights without importing the solver
// package, avoiding a ports<->psa import cycle (psa already imports
// ports for ObjectiveScorer/ConvergencePoint/HeuristicConfig).
type HeuristicWeights struct {
	Shift   float64
	Swap    float64
	Shuffle float64
}

// HeuristicConfig is the persisted shape of the PSA tuning parameters
// used for a heuristic run, so a fetched RunRecord fully explains how
// its solution was produced (spec.md §4.6).
type HeuristicConfig struct {
	InitialTemp      float64
	CoolingRate      float64
	MinTemp          float64
	MaxIterations    int64
	BatchSize        int
	SyncInterval     int
	Weights          HeuristicWeights
	WallClockLimitMs int64
	ObjectiveScript  string
}

// RunRecord is a persisted solve: the input problem and configuration,
// the resulting solution(s), and, for heuristic runs, the PSA config and
// convergence history.
type RunRecord struct {
	ID                string
	CreatedAt         time.Time
	Target            domain.Target
	Problem           domain.Problem
	ExactSolution     *domain.AlgorithmSolution
	HeuristicSolution *domain.ProblemSolution
	Config            *HeuristicConfig
	History           []ConvergencePoint
}

// RunRepository is the persistence port for solve runs, implemented by a
// Postgres and a SQLite adapter (spec.md's ambient persistence wiring).
type RunRepository interface {
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, error)
}
