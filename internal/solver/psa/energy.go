package psa

import (
	"math"

	"vrppd-solver-core/internal/domain"
)

// energy returns the scalar cost of a candidate under the active
// objective, or +Inf if the candidate was flagged infeasible by the
// operator that produced it (spec.md §4.4 / glossary "Energy").
func energy(sol domain.ProblemSolution, feasible bool, target domain.Target) float64 {
	if !feasible {
		return math.Inf(1)
	}
	return sol.Objective(target)
}
