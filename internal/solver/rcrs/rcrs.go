// Package rcrs implements the Residual-Capacity / Radial-Surcharge
// constructive initializer of spec.md §4.2: a greedy cheapest-insertion
// heuristic over a randomly shuffled order sequence, used to seed the PSA
// heuristic solver.
package rcrs

import (
	"math/rand"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/matrix"
	"vrppd-solver-core/internal/ports"
	"vrppd-solver-core/internal/validate"
)

// emptyBias is the fixed empirical weight favoring vehicles near the
// pickup when optimizing for empty distance (spec.md §4.2).
const emptyBias = 0.4

type slot struct {
	found    bool
	vehID    int
	stops    []domain.RouteStop
	route    domain.VehicleRoute
	cost     float64
}

// Build greedily constructs a feasible (or partially-feasible)
// ProblemSolution by processing orders in a random order and inserting
// each into its cheapest feasible (vehicle, pickupIndex, deliveryIndex)
// slot under the given objective. Orders with no feasible slot are left
// unassigned rather than failing the whole build.
func Build(p domain.Problem, m matrix.Matrices, target domain.Target, rng *rand.Rand, scorer ports.ObjectiveScorer) domain.ProblemSolution {
	if scorer == nil {
		scorer = ports.IdentityScorer{}
	}

	orders := make([]domain.Order, len(p.Orders))
	copy(orders, p.Orders)
	rng.Shuffle(len(orders), func(i, j int) { orders[i], orders[j] = orders[j], orders[i] })

	orderIdx := make(map[int]int, len(p.Orders))
	for i, o := range p.Orders {
		orderIdx[o.ID] = i
	}

	stopsByVehicle := make(map[int][]domain.RouteStop, len(p.Vehicles))
	routeByVehicle := make(map[int]domain.VehicleRoute, len(p.Vehicles))

	for _, ord := range orders {
		best := bestInsertion(p, m, target, scorer, stopsByVehicle, routeByVehicle, orderIdx, ord)
		if !best.found {
			continue
		}
		stopsByVehicle[best.vehID] = best.stops
		routeByVehicle[best.vehID] = best.route
	}

	sol := domain.ProblemSolution{Routes: make(map[int]domain.VehicleRoute, len(routeByVehicle))}
	for vehID, route := range routeByVehicle {
		sol.Routes[vehID] = route
	}
	sol.Recompute()
	return sol
}

func bestInsertion(
	p domain.Problem,
	m matrix.Matrices,
	target domain.Target,
	scorer ports.ObjectiveScorer,
	stopsByVehicle map[int][]domain.RouteStop,
	routeByVehicle map[int]domain.VehicleRoute,
	orderIdx map[int]int,
	ord domain.Order,
) slot {
	var best slot

	for vi, veh := range p.Vehicles {
		cur := stopsByVehicle[veh.ID]
		oldRoute := routeByVehicle[veh.ID]
		l := len(cur)

		for i := 0; i <= l; i++ {
			for j := i + 1; j <= l+1; j++ {
				candidate := insertPair(cur, i, j, ord.ID)
				route, err := validate.Simulate(p, m, vi, candidate)
				if err != nil {
					continue
				}

				cost := insertionCost(target, veh, oldRoute, route, m, vi, orderIdx[ord.ID])
				cost = scorer.Adjust(cost, ports.ScoreContext{VehicleID: veh.ID, OrderID: ord.ID, Target: target})

				if !best.found || cost < best.cost {
					best = slot{found: true, vehID: veh.ID, stops: candidate, route: route, cost: cost}
				}
			}
		}
	}

	return best
}

func insertionCost(target domain.Target, veh domain.Vehicle, oldRoute, newRoute domain.VehicleRoute, m matrix.Matrices, vehicleIdx, orderIdx int) float64 {
	switch target {
	case domain.TargetPrice:
		return (newRoute.TotalDistance - oldRoute.TotalDistance) * veh.PriceKm
	case domain.TargetEmpty:
		return (newRoute.EmptyDistance - oldRoute.EmptyDistance) + emptyBias*m.S[vehicleIdx][orderIdx]
	default:
		return newRoute.TotalDistance - oldRoute.TotalDistance
	}
}

// insertPair inserts a pickup at position i, then a delivery at position j
// (measured in the array *after* the pickup insertion, so j > i), into
// stops, returning a new slice.
func insertPair(stops []domain.RouteStop, i, j int, orderID int) []domain.RouteStop {
	withPickup := make([]domain.RouteStop, 0, len(stops)+1)
	withPickup = append(withPickup, stops[:i]...)
	withPickup = append(withPickup, domain.RouteStop{OrderID: orderID, Type: domain.StopPickup})
	withPickup = append(withPickup, stops[i:]...)

	out := make([]domain.RouteStop, 0, len(withPickup)+1)
	out = append(out, withPickup[:j]...)
	out = append(out, domain.RouteStop{OrderID: orderID, Type: domain.StopDelivery})
	out = append(out, withPickup[j:]...)
	return out
}
