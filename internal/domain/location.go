package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Location is an immutable geographic coordinate pair. Hash is a stable
// identifier derived from the coordinates, used as a cache key by the
// distance/memo caching adapters — it never changes after construction.
type Location struct {
	Lat  float64
	Lon  float64
	Hash string
}

// NewLocation builds a Location and computes its stable hash. Coordinates
// are quantized to 1e-6 degrees (~11cm) before hashing so that
// floating-point noise in repeated constructions of the "same" point still
// produces the same cache key.
func NewLocation(lat, lon float64) Location {
	key := fmt.Sprintf("%.6f,%.6f", lat, lon)
	sum := xxhash.Sum64String(key)
	return Location{
		Lat:  lat,
		Lon:  lon,
		Hash: fmt.Sprintf("%016x", sum),
	}
}
