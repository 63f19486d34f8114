package distancefn

import "vrppd-solver-core/internal/domain"

// MockPair is one fixed origin->destination distance used to build a
// deterministic test distance function, adapted from the teacher's
// MockDistanceProvider fixture shape.
type MockPair struct {
	From, To domain.Location
	Distance float64
}

// NewMock builds a Func backed by a fixed lookup table keyed on Location
// hash pairs. Missing pairs fall back to Euclidean so tests can seed only
// the pairs they care about asserting on.
func NewMock(pairs []MockPair) Func {
	m := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		m[p.From.Hash+"|"+p.To.Hash] = p.Distance
	}
	return func(a, b domain.Location) float64 {
		if d, ok := m[a.Hash+"|"+b.Hash]; ok {
			return d
		}
		return Euclidean(a, b)
	}
}
