// Package validate implements the constraint evaluator of spec.md §2: it
// simulates a candidate route against the load-capacity invariant and
// computes (totalDistance, emptyDistance, totalPrice). It is the route
// simulation shared by the RCRS constructive initializer and the PSA
// worker's neighborhood operators. The exact solver's TSP subsolver does
// its own incremental accounting during its search and shares only
// LoadEps with this package.
package validate

import (
	"fmt"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/matrix"
)

// LoadEps is the tolerance used for load-capacity comparisons
// (spec.md §6: ε = 1e-6).
const LoadEps = 1e-6

// EmptyThreshold is the load below which a leg counts as "empty"
// (spec.md §6: 0.001 for empty-vehicle checks in route simulation).
const EmptyThreshold = 0.001

// Simulate walks a candidate stop sequence for one vehicle and returns the
// resulting VehicleRoute with its aggregate statistics. It enforces only
// the load-capacity and pickup/delivery-pairing invariants of spec.md §3;
// the per-vehicle max-total-distance constraint is a separate, caller-side
// check (spec.md §9 open question: the exact solver applies it, the PSA
// energy function deliberately does not).
func Simulate(p domain.Problem, m matrix.Matrices, vehicleIdx int, stops []domain.RouteStop) (domain.VehicleRoute, error) {
	if vehicleIdx < 0 || vehicleIdx >= len(p.Vehicles) {
		return domain.VehicleRoute{}, fmt.Errorf("simulate: vehicle index %d out of range", vehicleIdx)
	}
	orderIdx := orderIndexMap(p)

	var totalDist, totalEmpty, load float64
	lastNode := -1
	picked := make(map[int]bool)
	delivered := make(map[int]bool)

	for _, stop := range stops {
		oi, ok := orderIdx[stop.OrderID]
		if !ok {
			return domain.VehicleRoute{}, fmt.Errorf("simulate: unknown order id %d", stop.OrderID)
		}
		order := p.Orders[oi]

		switch stop.Type {
		case domain.StopPickup:
			if picked[stop.OrderID] {
				return domain.VehicleRoute{}, fmt.Errorf("simulate: order %d picked up twice", stop.OrderID)
			}

			var leg float64
			if lastNode == -1 {
				leg = m.S[vehicleIdx][oi]
			} else {
				leg = m.D[lastNode][matrix.PickupNode(oi)]
			}

			if load < EmptyThreshold {
				totalEmpty += leg
			}
			totalDist += leg

			load += order.Load()
			if load > 1+LoadEps {
				return domain.VehicleRoute{}, fmt.Errorf("simulate: capacity exceeded after picking up order %d (load=%g)", stop.OrderID, load)
			}

			picked[stop.OrderID] = true
			lastNode = matrix.PickupNode(oi)

		case domain.StopDelivery:
			if !picked[stop.OrderID] {
				return domain.VehicleRoute{}, fmt.Errorf("simulate: order %d delivered before pickup", stop.OrderID)
			}
			if delivered[stop.OrderID] {
				return domain.VehicleRoute{}, fmt.Errorf("simulate: order %d delivered twice", stop.OrderID)
			}
			if lastNode == -1 {
				return domain.VehicleRoute{}, fmt.Errorf("simulate: order %d delivered with no prior stop", stop.OrderID)
			}

			leg := m.D[lastNode][matrix.DeliveryNode(oi)]
			totalDist += leg

			load -= order.Load()
			if load < -LoadEps {
				return domain.VehicleRoute{}, fmt.Errorf("simulate: negative load after delivering order %d", stop.OrderID)
			}

			delivered[stop.OrderID] = true
			lastNode = matrix.DeliveryNode(oi)

		default:
			return domain.VehicleRoute{}, fmt.Errorf("simulate: unknown stop type %q", stop.Type)
		}
	}

	for oid := range picked {
		if !delivered[oid] {
			return domain.VehicleRoute{}, fmt.Errorf("simulate: order %d picked up but never delivered", oid)
		}
	}
	if load > LoadEps || load < -LoadEps {
		return domain.VehicleRoute{}, fmt.Errorf("simulate: route ends with nonzero load %g", load)
	}

	veh := p.Vehicles[vehicleIdx]
	stopsCopy := make([]domain.RouteStop, len(stops))
	copy(stopsCopy, stops)

	return domain.VehicleRoute{
		Stops:         stopsCopy,
		TotalDistance: totalDist,
		EmptyDistance: totalEmpty,
		TotalPrice:    totalDist * veh.PriceKm,
	}, nil
}

func orderIndexMap(p domain.Problem) map[int]int {
	m := make(map[int]int, len(p.Orders))
	for i, o := range p.Orders {
		m[o.ID] = i
	}
	return m
}
