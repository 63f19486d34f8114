package psa

import "vrppd-solver-core/internal/domain"

// vehicleIndexMap returns vehicleID -> index-in-p.Vehicles, used whenever
// an operator needs to call into the matrix-indexed validate.Simulate.
func vehicleIndexMap(p domain.Problem) map[int]int {
	m := make(map[int]int, len(p.Vehicles))
	for i, v := range p.Vehicles {
		m[v.ID] = i
	}
	return m
}

// nonEmptyVehicleIDs returns the IDs of vehicles that currently carry at
// least one stop, in a stable order (the order of p.Vehicles) for
// deterministic iteration before a random pick.
func nonEmptyVehicleIDs(sol domain.ProblemSolution, p domain.Problem) []int {
	var ids []int
	for _, v := range p.Vehicles {
		if r, ok := sol.Routes[v.ID]; ok && len(r.Stops) > 0 {
			ids = append(ids, v.ID)
		}
	}
	return ids
}

// orderIDsInVisitOrder extracts the unique order IDs referenced by stops,
// in first-occurrence (visiting) order.
func orderIDsInVisitOrder(stops []domain.RouteStop) []int {
	seen := make(map[int]bool, len(stops)/2)
	var ids []int
	for _, s := range stops {
		if !seen[s.OrderID] {
			seen[s.OrderID] = true
			ids = append(ids, s.OrderID)
		}
	}
	return ids
}

// removeOrder returns stops with both the pickup and delivery of orderID
// removed.
func removeOrder(stops []domain.RouteStop, orderID int) []domain.RouteStop {
	out := make([]domain.RouteStop, 0, len(stops))
	for _, s := range stops {
		if s.OrderID == orderID {
			continue
		}
		out = append(out, s)
	}
	return out
}

// insertPair inserts a pickup at position i, then a delivery at position j
// (measured in the array *after* the pickup insertion, so j > i).
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

// appendPair appends orderID's pickup then delivery to the end of stops,
// as a contiguous pair (used by SWAP, spec.md §4.4 / §9 open question).
func appendPair(stops []domain.RouteStop, orderID int) []domain.RouteStop {
	out := make([]domain.RouteStop, 0, len(stops)+2)
	out = append(out, stops...)
	out = append(out, domain.RouteStop{OrderID: orderID, Type: domain.StopPickup})
	out = append(out, domain.RouteStop{OrderID: orderID, Type: domain.StopDelivery})
	return out
}

// cloneSolution makes a deep copy of a solution's Routes map so an
// operator can mutate per-vehicle stop slices without aliasing the
// caller's solution.
func cloneSolution(sol domain.ProblemSolution) domain.ProblemSolution {
	return sol.Clone()
}
