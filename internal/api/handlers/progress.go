package handlers

import (
	"sync"

	"go.uber.org/atomic"

	"vrppd-solver-core/internal/domain"
)

// ProgressRegistry tracks in-flight heuristic solves so GET /runs/{id} can
// return the PSA coordinator's current global best before the run
// finishes and persists. Each run's snapshot is stored behind an
// atomic.Value so the coordinator goroutine can publish updates without
// synchronizing with whatever goroutine is serving a concurrent read
// (spec.md §4.3).
type ProgressRegistry struct {
	mu sync.Mutex
	m  map[string]*atomic.Value
}

func NewProgressRegistry() *ProgressRegistry {
	return &ProgressRegistry{m: make(map[string]*atomic.Value)}
}

// Register allocates a slot for runID and returns the atomic.Value the
// caller should hand to psa.Solve.
func (r *ProgressRegistry) Register(runID string) *atomic.Value {
	v := new(atomic.Value)
	r.mu.Lock()
	r.m[runID] = v
	r.mu.Unlock()
	return v
}

// Release drops runID's slot once the run has persisted and no longer
// needs a live snapshot.
func (r *ProgressRegistry) Release(runID string) {
	r.mu.Lock()
	delete(r.m, runID)
	r.mu.Unlock()
}

// Snapshot returns the most recent global best published for runID, if
// the run is still in flight.
func (r *ProgressRegistry) Snapshot(runID string) (domain.ProblemSolution, bool) {
	r.mu.Lock()
	v, ok := r.m[runID]
	r.mu.Unlock()
	if !ok {
		return domain.ProblemSolution{}, false
	}

	sol, ok := v.Load().(domain.ProblemSolution)
	return sol, ok
}
