package exact

import (
	"testing"

	"vrppd-solver-core/internal/distancefn"
	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/matrix"
)

// feasibleOrderingCount brute-forces the number of pickup-before-delivery
// orderings of n paired stops, to check the closed-form (2n)!/2^n against
// an independent computation (spec.md §8's permutation-count law).
func feasibleOrderingCount(n int) int {
	type stop struct {
		order int
		isPU  bool
	}
	stops := make([]stop, 0, 2*n)
	for i := 0; i < n; i++ {
		stops = append(stops, stop{order: i, isPU: true}, stop{order: i, isPU: false})
	}

	count := 0
	var permute func(remaining []stop, chosen []stop)
	permute = func(remaining []stop, chosen []stop) {
		if len(remaining) == 0 {
			picked := make(map[int]bool)
			for _, s := range chosen {
				if s.isPU {
					picked[s.order] = true
				} else if !picked[s.order] {
					return
				}
			}
			count++
			return
		}
		for i := range remaining {
			next := append(append([]stop{}, remaining[:i]...), remaining[i+1:]...)
			permute(next, append(chosen, remaining[i]))
		}
	}
	permute(stops, nil)
	return count
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

func TestFeasibleOrderingCountMatchesClosedForm(t *testing.T) {
	for n := 1; n <= 3; n++ {
		got := feasibleOrderingCount(n)
		want := factorial(2*n) / (1 << uint(n))
		if got != want {
			t.Errorf("n=%d: feasible orderings = %d, want (2n)!/2^n = %d", n, got, want)
		}
	}
}

func TestSolveTSPSingleOrder(t *testing.T) {
	p := domain.Problem{
		Vehicles: []domain.Vehicle{{ID: 1, Start: domain.NewLocation(0, 0), PriceKm: 2}},
		Orders: []domain.Order{
			{ID: 1, Pickup: domain.NewLocation(0, 0), Delivery: domain.NewLocation(3, 4), LoadFactor: 1},
		},
		MaxTotalDistance: 100,
	}
	m := matrix.Build(p, distancefn.Euclidean)

	result := solveTSP(p, m, 0, 0b1)
	if !result.Feasible {
		t.Fatalf("solveTSP() infeasible for a trivially feasible single order")
	}
	if result.MinDistance.TotalDistance != 5 {
		t.Errorf("MinDistance.TotalDistance = %g, want 5", result.MinDistance.TotalDistance)
	}
	if result.MinDistance.TotalPrice != 10 {
		t.Errorf("MinDistance.TotalPrice = %g, want 10", result.MinDistance.TotalPrice)
	}
}

func TestSolveTSPEmptyMaskIsTriviallyFeasible(t *testing.T) {
	p := domain.Problem{
		Vehicles: []domain.Vehicle{{ID: 1, Start: domain.NewLocation(0, 0)}},
		Orders: []domain.Order{
			{ID: 1, Pickup: domain.NewLocation(0, 0), Delivery: domain.NewLocation(1, 1), LoadFactor: 1},
		},
		MaxTotalDistance: 100,
	}
	m := matrix.Build(p, distancefn.Euclidean)

	result := solveTSP(p, m, 0, 0)
	if !result.Feasible {
		t.Fatalf("solveTSP() with empty mask should be trivially feasible")
	}
	if len(result.MinDistance.Stops) != 0 {
		t.Fatalf("solveTSP() with empty mask returned stops: %+v", result.MinDistance.Stops)
	}
}

func TestSolveTSPRejectsOverMaxTotalDistance(t *testing.T) {
	p := domain.Problem{
		Vehicles: []domain.Vehicle{{ID: 1, Start: domain.NewLocation(0, 0)}},
		Orders: []domain.Order{
			{ID: 1, Pickup: domain.NewLocation(0, 0), Delivery: domain.NewLocation(3, 4), LoadFactor: 1},
		},
		MaxTotalDistance: 1, // the only feasible route is 5km long
	}
	m := matrix.Build(p, distancefn.Euclidean)

	result := solveTSP(p, m, 0, 0b1)
	if result.Feasible {
		t.Fatalf("solveTSP() feasible despite exceeding the per-vehicle maxTotalDistance bound")
	}
}
