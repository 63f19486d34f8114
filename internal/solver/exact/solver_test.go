package exact

import (
	"context"
	"errors"
	"math"
	"testing"

	"vrppd-solver-core/internal/distancefn"
	"vrppd-solver-core/internal/domain"
)

func TestSolveSeedScenarioOneSingleOrderSingleVehicle(t *testing.T) {
	p := domain.Problem{
		Vehicles: []domain.Vehicle{{ID: 1, Start: domain.NewLocation(0, 0), PriceKm: 2}},
		Orders: []domain.Order{
			{ID: 1, Pickup: domain.NewLocation(0, 0), Delivery: domain.NewLocation(3, 4), LoadFactor: 1},
		},
		MaxTotalDistance: 100,
	}

	sol, err := Solve(context.Background(), p, distancefn.Euclidean, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	route := sol.BestDistance.Routes[1]
	wantStops := []domain.RouteStop{
		{OrderID: 1, Type: domain.StopPickup},
		{OrderID: 1, Type: domain.StopDelivery},
	}
	if len(route.Stops) != len(wantStops) || route.Stops[0] != wantStops[0] || route.Stops[1] != wantStops[1] {
		t.Fatalf("route stops = %+v, want %+v", route.Stops, wantStops)
	}
	if sol.BestDistance.TotalDistance != 5 {
		t.Errorf("TotalDistance = %g, want 5", sol.BestDistance.TotalDistance)
	}
	if sol.BestDistance.EmptyDistance != 0 {
		t.Errorf("EmptyDistance = %g, want 0", sol.BestDistance.EmptyDistance)
	}
	if sol.BestDistance.TotalPrice != 10 {
		t.Errorf("TotalPrice = %g, want 10", sol.BestDistance.TotalPrice)
	}
}

func TestSolveSeedScenarioTwoDisjointRegions(t *testing.T) {
	p := domain.Problem{
		Vehicles: []domain.Vehicle{
			{ID: 1, Start: domain.NewLocation(0, 0), PriceKm: 1},
			{ID: 2, Start: domain.NewLocation(100, 0), PriceKm: 1},
		},
		Orders: []domain.Order{
			{ID: 1, Pickup: domain.NewLocation(5, 0), Delivery: domain.NewLocation(5, 5), LoadFactor: 1},
			{ID: 2, Pickup: domain.NewLocation(105, 0), Delivery: domain.NewLocation(105, 5), LoadFactor: 1},
		},
		MaxTotalDistance: 1000,
	}

	sol, err := Solve(context.Background(), p, distancefn.Euclidean, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if math.Abs(sol.BestDistance.TotalDistance-20) > 1e-9 {
		t.Fatalf("TotalDistance = %g, want 20", sol.BestDistance.TotalDistance)
	}
	// Each vehicle should serve the order in its own region.
	if r1, ok := sol.BestDistance.Routes[1]; !ok || r1.Stops[0].OrderID != 1 {
		t.Errorf("vehicle 1 route = %+v, want order 1", sol.BestDistance.Routes[1])
	}
	if r2, ok := sol.BestDistance.Routes[2]; !ok || r2.Stops[0].OrderID != 2 {
		t.Errorf("vehicle 2 route = %+v, want order 2", sol.BestDistance.Routes[2])
	}
}

func TestSolveSeedScenarioThreePriceVsDistanceConflict(t *testing.T) {
	p := domain.Problem{
		Vehicles: []domain.Vehicle{
			{ID: 1, Start: domain.NewLocation(0, 0), PriceKm: 10},
			{ID: 2, Start: domain.NewLocation(50, 0), PriceKm: 1},
		},
		Orders: []domain.Order{
			{ID: 1, Pickup: domain.NewLocation(5, 0), Delivery: domain.NewLocation(10, 0), LoadFactor: 1},
		},
		MaxTotalDistance: 1000,
	}

	sol, err := Solve(context.Background(), p, distancefn.Euclidean, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if _, ok := sol.BestDistance.Routes[1]; !ok {
		t.Errorf("best-distance solution should route through vehicle 1 (distance 10), got %+v", sol.BestDistance.Routes)
	}
	if math.Abs(sol.BestDistance.TotalDistance-10) > 1e-9 {
		t.Errorf("best-distance TotalDistance = %g, want 10", sol.BestDistance.TotalDistance)
	}

	if _, ok := sol.BestPrice.Routes[2]; !ok {
		t.Errorf("best-price solution should route through vehicle 2 (price 50 vs v1's 100), got %+v", sol.BestPrice.Routes)
	}
	if math.Abs(sol.BestPrice.TotalPrice-50) > 1e-9 {
		t.Errorf("best-price TotalPrice = %g, want 50", sol.BestPrice.TotalPrice)
	}
}

func TestSolveSeedScenarioFiveExactSizeGuard(t *testing.T) {
	manyVehicles := make([]domain.Vehicle, 8)
	for i := range manyVehicles {
		manyVehicles[i] = domain.Vehicle{ID: i + 1, Start: domain.NewLocation(0, 0)}
	}
	p := domain.Problem{
		Vehicles:         manyVehicles,
		Orders:           []domain.Order{{ID: 1, Pickup: domain.NewLocation(0, 0), Delivery: domain.NewLocation(1, 1), LoadFactor: 1}},
		MaxTotalDistance: 100,
	}

	_, err := Solve(context.Background(), p, distancefn.Euclidean, nil)
	if !errors.Is(err, domain.ErrProblemTooLarge) {
		t.Fatalf("Solve() error = %v, want ErrProblemTooLarge", err)
	}
}

func TestSolveZeroOrdersBoundary(t *testing.T) {
	p := domain.Problem{
		Vehicles: []domain.Vehicle{
			{ID: 1, Start: domain.NewLocation(0, 0)},
			{ID: 2, Start: domain.NewLocation(1, 1)},
		},
		MaxTotalDistance: 100,
	}

	sol, err := Solve(context.Background(), p, distancefn.Euclidean, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v, want nil for the zero-orders boundary case", err)
	}

	for _, s := range []domain.ProblemSolution{sol.BestDistance, sol.BestPrice, sol.BestEmpty} {
		if len(s.Routes) != len(p.Vehicles) {
			t.Fatalf("zero-orders solution has %d routes, want one per vehicle (%d)", len(s.Routes), len(p.Vehicles))
		}
		for _, v := range p.Vehicles {
			if len(s.Routes[v.ID].Stops) != 0 {
				t.Errorf("vehicle %d has a nonempty route on a zero-orders problem: %+v", v.ID, s.Routes[v.ID])
			}
		}
		if s.TotalDistance != 0 || s.EmptyDistance != 0 || s.TotalPrice != 0 {
			t.Errorf("zero-orders solution has nonzero aggregates: %+v", s)
		}
	}
}

func TestSolveInfeasibleMaxTotalDistanceReturnsSentinel(t *testing.T) {
	p := domain.Problem{
		Vehicles: []domain.Vehicle{{ID: 1, Start: domain.NewLocation(0, 0)}},
		Orders: []domain.Order{
			{ID: 1, Pickup: domain.NewLocation(0, 0), Delivery: domain.NewLocation(3, 4), LoadFactor: 1},
		},
		MaxTotalDistance: 1, // the only route is 5km, which no vehicle can satisfy
	}

	sol, err := Solve(context.Background(), p, distancefn.Euclidean, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v, want nil with an infeasible sentinel solution", err)
	}
	for _, s := range []domain.ProblemSolution{sol.BestDistance, sol.BestPrice, sol.BestEmpty} {
		if !math.IsInf(s.TotalDistance, 1) {
			t.Errorf("infeasible solution TotalDistance = %g, want +Inf", s.TotalDistance)
		}
	}
}

func TestSolveVehicleWithNoOrdersStaysEmpty(t *testing.T) {
	p := domain.Problem{
		Vehicles: []domain.Vehicle{
			{ID: 1, Start: domain.NewLocation(0, 0), PriceKm: 1},
			{ID: 2, Start: domain.NewLocation(1000, 1000), PriceKm: 1},
		},
		Orders: []domain.Order{
			{ID: 1, Pickup: domain.NewLocation(0, 0), Delivery: domain.NewLocation(1, 1), LoadFactor: 1},
		},
		MaxTotalDistance: 1000,
	}

	sol, err := Solve(context.Background(), p, distancefn.Euclidean, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if _, ok := sol.BestDistance.Routes[2]; ok {
		t.Errorf("the far-away vehicle was assigned a route when staying empty is strictly better: %+v", sol.BestDistance.Routes)
	}
}
