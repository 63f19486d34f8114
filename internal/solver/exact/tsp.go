package exact

import (
	"math"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/matrix"
	"vrppd-solver-core/internal/ports"
	"vrppd-solver-core/internal/validate"
)

// tspBest tracks the three independently-optimal route snapshots found so
// far for one (vehicle, order subset) subproblem.
type tspBest struct {
	dist  ports.TSPRoute
	empty ports.TSPRoute
	price ports.TSPRoute
}

func newTSPBest() tspBest {
	inf := math.Inf(1)
	return tspBest{
		dist:  ports.TSPRoute{TotalDistance: inf},
		empty: ports.TSPRoute{EmptyDistance: inf},
		price: ports.TSPRoute{TotalPrice: inf},
	}
}

// solveTSP enumerates feasible pickup/delivery orderings of the orders
// named by orderMask (bits over the global order index space of p.Orders)
// for vehicle vehicleIdx, and returns the three routes that independently
// minimize distance, empty distance, and price, subject to capacity and
// the vehicle's maxTotalDistance constraint. Feasible is false if no
// ordering satisfies both.
func solveTSP(p domain.Problem, m matrix.Matrices, vehicleIdx int, orderMask uint64) ports.TSPResult {
	var orderIdxs []int
	for i := range p.Orders {
		if orderMask&(1<<uint(i)) != 0 {
			orderIdxs = append(orderIdxs, i)
		}
	}
	k := len(orderIdxs)
	if k == 0 {
		return ports.TSPResult{Feasible: true}
	}

	veh := p.Vehicles[vehicleIdx]
	targetMask := uint64(1)<<uint(k) - 1
	best := newTSPBest()

	stops := make([]domain.RouteStop, 0, 2*k)

	var rec func(lastNode int, dist, empty, price, load float64, picked, delivered uint64)
	rec = func(lastNode int, dist, empty, price, load float64, picked, delivered uint64) {
		if delivered == targetMask {
			if dist <= p.MaxTotalDistance {
				if dist < best.dist.TotalDistance {
					best.dist = snapshot(stops, dist, empty, price)
				}
				if empty < best.empty.EmptyDistance {
					best.empty = snapshot(stops, dist, empty, price)
				}
				if price < best.price.TotalPrice {
					best.price = snapshot(stops, dist, empty, price)
				}
			}
			return
		}

		// Branch-and-bound: abandon once every objective is already beaten.
		if dist >= best.dist.TotalDistance && empty >= best.empty.EmptyDistance && price >= best.price.TotalPrice {
			return
		}

		for bit := 0; bit < k; bit++ {
			oi := orderIdxs[bit]
			order := p.Orders[oi]
			bitMask := uint64(1) << uint(bit)

			switch {
			case picked&bitMask == 0:
				var leg float64
				if lastNode == -1 {
					leg = m.S[vehicleIdx][oi]
				} else {
					leg = m.D[lastNode][matrix.PickupNode(oi)]
				}
				newLoad := load + order.Load()
				if newLoad > 1+validate.LoadEps {
					continue
				}
				newEmpty := empty
				if picked == delivered {
					newEmpty += leg
				}

				stops = append(stops, domain.RouteStop{OrderID: order.ID, Type: domain.StopPickup})
				rec(matrix.PickupNode(oi), dist+leg, newEmpty, price+leg*veh.PriceKm, newLoad, picked|bitMask, delivered)
				stops = stops[:len(stops)-1]

			case delivered&bitMask == 0:
				leg := m.D[lastNode][matrix.DeliveryNode(oi)]
				newLoad := load - order.Load()

				stops = append(stops, domain.RouteStop{OrderID: order.ID, Type: domain.StopDelivery})
				rec(matrix.DeliveryNode(oi), dist+leg, empty, price+leg*veh.PriceKm, newLoad, picked, delivered|bitMask)
				stops = stops[:len(stops)-1]
			}
		}
	}

	rec(-1, 0, 0, 0, 0, 0, 0)

	if math.IsInf(best.dist.TotalDistance, 1) {
		return ports.TSPResult{Feasible: false}
	}
	return ports.TSPResult{
		Feasible:    true,
		MinDistance: best.dist,
		MinEmpty:    best.empty,
		MinPrice:    best.price,
	}
}

func snapshot(stops []domain.RouteStop, dist, empty, price float64) ports.TSPRoute {
	cp := make([]domain.RouteStop, len(stops))
	copy(cp, stops)
	return ports.TSPRoute{Stops: cp, TotalDistance: dist, EmptyDistance: empty, TotalPrice: price}
}
