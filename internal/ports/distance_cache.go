package ports

import "context"

// DistanceCache persists pairwise distances keyed by Location.Hash, so a
// repeated solve over an overlapping set of locations skips recomputing
// distancefn.Func for pairs it has already seen. It is optional: matrix.Build
// always works against a bare distancefn.Func, and a cache is only useful
// in front of an expensive (e.g. routing-API-backed) one.
type DistanceCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]float64, error)
	PutMany(ctx context.Context, origin string, distances map[string]float64) error
}
