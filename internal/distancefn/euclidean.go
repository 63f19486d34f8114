package distancefn

import (
	"math"

	"vrppd-solver-core/internal/domain"
)

// Euclidean treats latitude/longitude as a flat plane in degrees and
// returns the straight-line distance. It is not geographically accurate
// but is deterministic, symmetric, and cheap — used by the spec's §8
// seed scenarios, which are specified in flat Euclidean terms.
func Euclidean(a, b domain.Location) float64 {
	dLat := a.Lat - b.Lat
	dLon := a.Lon - b.Lon
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
