package psa

import "vrppd-solver-core/internal/domain"

// syncReport is a worker -> coordinator message emitted periodically
// during the run (spec.md §4.3's SYNC_REPORT).
type syncReport struct {
	workerIdx  int
	iterations int64
	energy     float64
	solution   domain.ProblemSolution
}

// doneMsg is a worker -> coordinator terminal message (spec.md §4.3's
// DONE).
type doneMsg struct {
	workerIdx int
	energy    float64
	solution  domain.ProblemSolution
	err       error
}

// influenceUpdate is a coordinator -> worker message forwarding an elite
// solution from the worker's ring predecessor (spec.md §4.3/§4.4's
// INFLUENCE_UPDATE).
type influenceUpdate struct {
	solution domain.ProblemSolution
	energy   float64
}
