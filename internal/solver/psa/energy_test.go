package psa

import (
	"math"
	"testing"

	"vrppd-solver-core/internal/domain"
)

func TestEnergyInfeasibleIsAlwaysInfinite(t *testing.T) {
	sol := domain.ProblemSolution{TotalDistance: 5, TotalPrice: 5, EmptyDistance: 5}
	for _, target := range []domain.Target{domain.TargetDistance, domain.TargetPrice, domain.TargetEmpty} {
		if e := energy(sol, false, target); !math.IsInf(e, 1) {
			t.Errorf("energy(feasible=false, target=%v) = %g, want +Inf", target, e)
		}
	}
}

func TestEnergyFeasibleMatchesObjective(t *testing.T) {
	sol := domain.ProblemSolution{TotalDistance: 10, TotalPrice: 20, EmptyDistance: 3}
	for _, target := range []domain.Target{domain.TargetDistance, domain.TargetPrice, domain.TargetEmpty} {
		want := sol.Objective(target)
		if got := energy(sol, true, target); got != want {
			t.Errorf("energy(feasible=true, target=%v) = %g, want Objective() = %g", target, got, want)
		}
	}
}
