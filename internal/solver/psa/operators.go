package psa

import (
	"math/rand"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/matrix"
	"vrppd-solver-core/internal/validate"
)

// mutate draws one of the three neighborhood operators by weight and
// applies it to current, returning the candidate solution and whether it
// is feasible under spec.md §3's invariants. An operator whose precondition
// isn't met (not enough non-empty vehicles for SWAP, not enough stops for
// INTRA-SHUFFLE) falls back to SHIFT, which has no such precondition
// beyond at least one assigned order existing somewhere in the fleet.
func mutate(current domain.ProblemSolution, p domain.Problem, m matrix.Matrices, rng *rand.Rand, w Weights) (domain.ProblemSolution, bool) {
	draw := rng.Float64()

	switch {
	case draw < w.Shift:
		return shift(current, p, m, rng)
	case draw < w.Shift+w.Swap:
		if len(nonEmptyVehicleIDs(current, p)) >= 2 {
			return swap(current, p, m, rng)
		}
		return shift(current, p, m, rng)
	default:
		if hasRouteWithAtLeast(current, p, 4) {
			return intraShuffle(current, p, m, rng)
		}
		return shift(current, p, m, rng)
	}
}

func hasRouteWithAtLeast(sol domain.ProblemSolution, p domain.Problem, n int) bool {
	for _, v := range p.Vehicles {
		if r, ok := sol.Routes[v.ID]; ok && len(r.Stops) >= n {
			return true
		}
	}
	return false
}

// shift removes one order from a randomly chosen non-empty vehicle and
// reinserts it at a random feasible-or-not position in a (possibly
// different) randomly chosen vehicle.
func shift(current domain.ProblemSolution, p domain.Problem, m matrix.Matrices, rng *rand.Rand) (domain.ProblemSolution, bool) {
	nonEmpty := nonEmptyVehicleIDs(current, p)
	if len(nonEmpty) == 0 {
		return current, true
	}

	vIdx := vehicleIndexMap(p)
	v1ID := nonEmpty[rng.Intn(len(nonEmpty))]
	v1Stops := current.Routes[v1ID].Stops
	orderIDs := orderIDsInVisitOrder(v1Stops)
	orderID := orderIDs[rng.Intn(len(orderIDs))]

	next := cloneSolution(current)
	remaining := removeOrder(v1Stops, orderID)

	v2ID := p.Vehicles[rng.Intn(len(p.Vehicles))].ID
	var v2Stops []domain.RouteStop
	if v2ID == v1ID {
		v2Stops = remaining
	} else {
		v2Stops = current.Routes[v2ID].Stops
	}

	l := len(v2Stops)
	i := rng.Intn(l + 1)
	j := i + 1 + rng.Intn(l+1-i)
	candidate := insertPair(v2Stops, i, j, orderID)

	v1Route, err1 := validate.Simulate(p, m, vIdx[v1ID], remaining)
	if v1ID == v2ID {
		v2Route, err2 := validate.Simulate(p, m, vIdx[v2ID], candidate)
		if err2 != nil {
			return next, false
		}
		setRoute(&next, v1ID, v2Route)
		next.Recompute()
		return next, true
	}

	v2Route, err2 := validate.Simulate(p, m, vIdx[v2ID], candidate)
	if err1 != nil || err2 != nil {
		return next, false
	}
	setRoute(&next, v1ID, v1Route)
	setRoute(&next, v2ID, v2Route)
	next.Recompute()
	return next, true
}

// swap exchanges one order between two distinct non-empty vehicles,
// re-appending each as a contiguous pickup/delivery pair at the end of
// the opposite route (spec.md §4.4, §9 open question: preserved as
// specified even though it discards prior interleaving).
func swap(current domain.ProblemSolution, p domain.Problem, m matrix.Matrices, rng *rand.Rand) (domain.ProblemSolution, bool) {
	nonEmpty := nonEmptyVehicleIDs(current, p)
	vIdx := vehicleIndexMap(p)

	v1ID := nonEmpty[rng.Intn(len(nonEmpty))]
	v2ID := v1ID
	for attempt := 0; attempt < 5 && v2ID == v1ID; attempt++ {
		v2ID = nonEmpty[rng.Intn(len(nonEmpty))]
	}
	if v2ID == v1ID {
		return current, true
	}

	v1Stops := current.Routes[v1ID].Stops
	v2Stops := current.Routes[v2ID].Stops
	o1IDs := orderIDsInVisitOrder(v1Stops)
	o2IDs := orderIDsInVisitOrder(v2Stops)
	o1 := o1IDs[rng.Intn(len(o1IDs))]
	o2 := o2IDs[rng.Intn(len(o2IDs))]

	newV1 := appendPair(removeOrder(v1Stops, o1), o2)
	newV2 := appendPair(removeOrder(v2Stops, o2), o1)

	v1Route, err1 := validate.Simulate(p, m, vIdx[v1ID], newV1)
	v2Route, err2 := validate.Simulate(p, m, vIdx[v2ID], newV2)

	next := cloneSolution(current)
	if err1 != nil || err2 != nil {
		return next, false
	}
	setRoute(&next, v1ID, v1Route)
	setRoute(&next, v2ID, v2Route)
	next.Recompute()
	return next, true
}

// intraShuffle reorders the orders visited by one route, keeping each
// order's pickup/delivery pair contiguous.
func intraShuffle(current domain.ProblemSolution, p domain.Problem, m matrix.Matrices, rng *rand.Rand) (domain.ProblemSolution, bool) {
	vIdx := vehicleIndexMap(p)
	var candidates []int
	for _, v := range p.Vehicles {
		if r, ok := current.Routes[v.ID]; ok && len(r.Stops) >= 4 {
			candidates = append(candidates, v.ID)
		}
	}
	if len(candidates) == 0 {
		return current, true
	}

	vID := candidates[rng.Intn(len(candidates))]
	ids := orderIDsInVisitOrder(current.Routes[vID].Stops)
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	var newStops []domain.RouteStop
	for _, id := range ids {
		newStops = append(newStops,
			domain.RouteStop{OrderID: id, Type: domain.StopPickup},
			domain.RouteStop{OrderID: id, Type: domain.StopDelivery},
		)
	}

	route, err := validate.Simulate(p, m, vIdx[vID], newStops)
	next := cloneSolution(current)
	if err != nil {
		return next, false
	}
	setRoute(&next, vID, route)
	next.Recompute()
	return next, true
}

func setRoute(sol *domain.ProblemSolution, vehicleID int, route domain.VehicleRoute) {
	if len(route.Stops) == 0 {
		delete(sol.Routes, vehicleID)
		return
	}
	sol.Routes[vehicleID] = route
}
