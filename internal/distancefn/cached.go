package distancefn

import (
	"context"
	"log"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/ports"
)

// Cached wraps fn with a ports.DistanceCache lookup keyed by Location
// hash, so repeated solves over overlapping locations skip recomputing
// fn for pairs already seen. A cache error degrades to calling fn
// directly rather than failing the solve.
func Cached(ctx context.Context, fn Func, cache ports.DistanceCache) Func {
	if cache == nil {
		return fn
	}

	return func(a, b domain.Location) float64 {
		cached, err := cache.GetMany(ctx, a.Hash, []string{b.Hash})
		if err != nil {
			log.Printf("distancefn: cache lookup %s->%s failed: %v", a.Hash, b.Hash, err)
			return fn(a, b)
		}
		if km, ok := cached[b.Hash]; ok {
			return km
		}

		km := fn(a, b)
		if err := cache.PutMany(ctx, a.Hash, map[string]float64{b.Hash: km}); err != nil {
			log.Printf("distancefn: cache store %s->%s failed: %v", a.Hash, b.Hash, err)
		}
		return km
	}
}
