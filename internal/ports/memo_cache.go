package ports

import (
	"context"

	"vrppd-solver-core/internal/domain"
)

// MemoKey identifies one held-Karp-style TSP subproblem: a vehicle and a
// bitmask over the order indices assigned to it. A TSP subsolve is
// uniquely determined by this pair (spec.md §4.1).
type MemoKey struct {
	VehicleIdx int
	OrderMask  uint64
}

// TSPRoute is one candidate route produced by the TSP subsolver, along
// with its aggregates.
type TSPRoute struct {
	Stops         []domain.RouteStop
	TotalDistance float64
	EmptyDistance float64
	TotalPrice    float64
}

// TSPResult is the memoized outcome of solving one (vehicle, order subset)
// TSP subproblem: the three best routes for this subset under this
// vehicle, one per objective, or Feasible=false if no ordering satisfies
// both capacity and the problem's per-vehicle MaxTotalDistance.
type TSPResult struct {
	Feasible    bool
	MinDistance TSPRoute
	MinEmpty    TSPRoute
	MinPrice    TSPRoute
}

// MemoCache is the injected held-Karp memoization port used by the exact
// solver. The default is an in-process map scoped to a single solve call;
// a Redis-backed implementation is available for cross-process reuse, but
// is never required for correctness (spec.md §4.1).
type MemoCache interface {
	Get(ctx context.Context, key MemoKey) (TSPResult, bool, error)
	Put(ctx context.Context, key MemoKey, result TSPResult) error
}
