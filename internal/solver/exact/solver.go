// Package exact implements the branch-and-bound vehicle-partition search
// combined with the held-Karp-style TSP subsolver of spec.md §4.1. It
// produces provably optimal solutions for all three objectives
// (distance, price, empty distance) simultaneously, for instances of up
// to 7 vehicles and 7 orders.
package exact

import (
	"context"
	"fmt"
	"math"

	"vrppd-solver-core/internal/distancefn"
	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/matrix"
	"vrppd-solver-core/internal/platform/obs"
	"vrppd-solver-core/internal/ports"
)

const maxDimension = 7

// accumulator is the recursion-stack state of the outer vehicle-assignment
// search: the running per-objective sums plus, for each objective, the
// best route chosen so far per vehicle.
type accumulator struct {
	distSum, emptySum, priceSum float64
	distRoutes                  map[int]domain.VehicleRoute
	emptyRoutes                 map[int]domain.VehicleRoute
	priceRoutes                 map[int]domain.VehicleRoute
}

func newAccumulator() accumulator {
	return accumulator{
		distRoutes:  map[int]domain.VehicleRoute{},
		emptyRoutes: map[int]domain.VehicleRoute{},
		priceRoutes: map[int]domain.VehicleRoute{},
	}
}

func (a accumulator) clone() accumulator {
	cp := accumulator{
		distSum:     a.distSum,
		emptySum:    a.emptySum,
		priceSum:    a.priceSum,
		distRoutes:  make(map[int]domain.VehicleRoute, len(a.distRoutes)),
		emptyRoutes: make(map[int]domain.VehicleRoute, len(a.emptyRoutes)),
		priceRoutes: make(map[int]domain.VehicleRoute, len(a.priceRoutes)),
	}
	for k, v := range a.distRoutes {
		cp.distRoutes[k] = v
	}
	for k, v := range a.emptyRoutes {
		cp.emptyRoutes[k] = v
	}
	for k, v := range a.priceRoutes {
		cp.priceRoutes[k] = v
	}
	return cp
}

// searcher holds the shared read-only inputs and the mutable global-best
// state for one Solve call. It is never shared across goroutines.
type searcher struct {
	problem  domain.Problem
	matrices matrix.Matrices
	memo     ports.MemoCache
	fullMask uint64

	bestDistSum, bestPriceSum, bestEmptySum float64
	bestDistSolution                        domain.ProblemSolution
	bestPriceSolution                       domain.ProblemSolution
	bestEmptySolution                       domain.ProblemSolution
	found                                   bool
}

// Solve runs the exact branch-and-bound search and returns the optimal
// ProblemSolution for each of the three objectives. It fails with
// domain.ErrProblemTooLarge when either dimension exceeds 7.
func Solve(ctx context.Context, p domain.Problem, dist distancefn.Func, memo ports.MemoCache) (sol domain.AlgorithmSolution, err error) {
	defer obs.Time(ctx, "exact.Solve")(&err)

	if len(p.Vehicles) > maxDimension || len(p.Orders) > maxDimension {
		return domain.AlgorithmSolution{}, domain.ErrProblemTooLarge
	}
	if err := p.Validate(); err != nil {
		return domain.AlgorithmSolution{}, fmt.Errorf("exact solve: %w", err)
	}
	if len(p.Orders) == 0 {
		empty := domain.NewEmptyProblemSolution(p)
		result := domain.AlgorithmSolution{BestDistance: empty, BestPrice: empty, BestEmpty: empty}
		obs.SummarizeSolve(ctx, "exact", 0, empty.TotalDistance, empty.TotalPrice)
		return result, nil
	}
	if memo == nil {
		memo = newInProcessMemo()
	}

	n := len(p.Orders)
	s := &searcher{
		problem:      p,
		matrices:     matrix.Build(p, dist),
		memo:         memo,
		fullMask:     uint64(1)<<uint(n) - 1,
		bestDistSum:  math.Inf(1),
		bestPriceSum: math.Inf(1),
		bestEmptySum: math.Inf(1),
	}

	if err := s.search(ctx, 0, 0, newAccumulator()); err != nil {
		return domain.AlgorithmSolution{}, err
	}

	if !s.found {
		inf := infeasibleSolution()
		obs.SummarizeSolve(ctx, "exact", 0, inf.TotalDistance, inf.TotalPrice)
		return domain.AlgorithmSolution{BestDistance: inf, BestPrice: inf, BestEmpty: inf}, nil
	}

	obs.SummarizeSolve(ctx, "exact", 0, s.bestDistSolution.TotalDistance, s.bestDistSolution.TotalPrice)

	return domain.AlgorithmSolution{
		BestDistance: s.bestDistSolution,
		BestPrice:    s.bestPriceSolution,
		BestEmpty:    s.bestEmptySolution,
	}, nil
}

func infeasibleSolution() domain.ProblemSolution {
	return domain.ProblemSolution{
		Routes:        map[int]domain.VehicleRoute{},
		TotalDistance: math.Inf(1),
		EmptyDistance: math.Inf(1),
		TotalPrice:    math.Inf(1),
	}
}

func (s *searcher) search(ctx context.Context, vehicleIdx int, assignedMask uint64, acc accumulator) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Prune: every accumulated metric already at or past the current best.
	if s.found && acc.distSum >= s.bestDistSum && acc.priceSum >= s.bestPriceSum && acc.emptySum >= s.bestEmptySum {
		return nil
	}

	if vehicleIdx == len(s.problem.Vehicles) {
		if assignedMask == s.fullMask {
			s.updateGlobalBest(acc)
		}
		return nil
	}

	// This vehicle takes no orders: contributes zeros to every accumulator
	// and gets no entry in the resulting solution's Routes map.
	if err := s.search(ctx, vehicleIdx+1, assignedMask, acc.clone()); err != nil {
		return err
	}

	remaining := s.fullMask &^ assignedMask
	var searchErr error
	EachNonEmptySubset(remaining, func(sub uint64) {
		if searchErr != nil {
			return
		}

		key := ports.MemoKey{VehicleIdx: vehicleIdx, OrderMask: sub}
		result, ok, err := s.memo.Get(ctx, key)
		if err != nil {
			searchErr = err
			return
		}
		if !ok {
			result = solveTSP(s.problem, s.matrices, vehicleIdx, sub)
			if err := s.memo.Put(ctx, key, result); err != nil {
				searchErr = err
				return
			}
		}
		if !result.Feasible {
			return
		}

		vehID := s.problem.Vehicles[vehicleIdx].ID
		next := acc.clone()
		next.distSum += result.MinDistance.TotalDistance
		next.emptySum += result.MinEmpty.EmptyDistance
		next.priceSum += result.MinPrice.TotalPrice
		next.distRoutes[vehID] = toVehicleRoute(result.MinDistance)
		next.emptyRoutes[vehID] = toVehicleRoute(result.MinEmpty)
		next.priceRoutes[vehID] = toVehicleRoute(result.MinPrice)

		if err := s.search(ctx, vehicleIdx+1, assignedMask|sub, next); err != nil {
			searchErr = err
		}
	})

	return searchErr
}

func toVehicleRoute(r ports.TSPRoute) domain.VehicleRoute {
	return domain.VehicleRoute{
		Stops:         r.Stops,
		TotalDistance: r.TotalDistance,
		EmptyDistance: r.EmptyDistance,
		TotalPrice:    r.TotalPrice,
	}
}

func (s *searcher) updateGlobalBest(acc accumulator) {
	if !s.found || acc.distSum < s.bestDistSum {
		s.bestDistSum = acc.distSum
		s.bestDistSolution = solutionFrom(acc.distRoutes)
	}
	if !s.found || acc.priceSum < s.bestPriceSum {
		s.bestPriceSum = acc.priceSum
		s.bestPriceSolution = solutionFrom(acc.priceRoutes)
	}
	if !s.found || acc.emptySum < s.bestEmptySum {
		s.bestEmptySum = acc.emptySum
		s.bestEmptySolution = solutionFrom(acc.emptyRoutes)
	}
	s.found = true
}

func solutionFrom(routes map[int]domain.VehicleRoute) domain.ProblemSolution {
	sol := domain.ProblemSolution{Routes: make(map[int]domain.VehicleRoute, len(routes))}
	for id, r := range routes {
		sol.Routes[id] = r
	}
	sol.Recompute()
	return sol
}
