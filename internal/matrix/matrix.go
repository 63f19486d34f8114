// Package matrix builds the two precomputed distance tables every solver
// works against: D over order pickup/delivery nodes, and S from each
// vehicle's start to each order's pickup. Both are built once per solve
// call and never mutated afterward (spec.md §3).
package matrix

import (
	"vrppd-solver-core/internal/distancefn"
	"vrppd-solver-core/internal/domain"
)

// Matrices holds the precomputed D (2N x 2N) and S (V x N) distance
// tables for one Problem.
type Matrices struct {
	// D[i][j] is the distance between node(i) and node(j), where
	// node(k) is the pickup of orders[k/2] if k is even, else its
	// delivery. D[i][i] is always 0.
	D [][]float64
	// S[v][o] is the distance from vehicle[v].Start to orders[o].Pickup.
	S [][]float64
}

// Build computes D and S for a problem under the given distance function.
func Build(p domain.Problem, dist distancefn.Func) Matrices {
	n := len(p.Orders)
	nodes := make([]domain.Location, 2*n)
	for i, o := range p.Orders {
		nodes[2*i] = o.Pickup
		nodes[2*i+1] = o.Delivery
	}

	d := make([][]float64, 2*n)
	for i := range d {
		d[i] = make([]float64, 2*n)
		for j := range d[i] {
			if i == j {
				continue
			}
			d[i][j] = dist(nodes[i], nodes[j])
		}
	}

	s := make([][]float64, len(p.Vehicles))
	for v, veh := range p.Vehicles {
		s[v] = make([]float64, n)
		for o, ord := range p.Orders {
			s[v][o] = dist(veh.Start, ord.Pickup)
		}
	}

	return Matrices{D: d, S: s}
}

// PickupNode returns the D-matrix row/column index of order o's pickup.
func PickupNode(orderIdx int) int { return 2 * orderIdx }

// DeliveryNode returns the D-matrix row/column index of order o's delivery.
func DeliveryNode(orderIdx int) int { return 2*orderIdx + 1 }
