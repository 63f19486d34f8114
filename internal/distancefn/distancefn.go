// Package distancefn provides concrete, pure distance functions that can
// be injected into the solvers. The core itself never chooses a distance
// function (spec.md §1 treats that choice as an external collaborator);
// these implementations exist for tests, demos, and the HTTP surface's
// default wiring.
package distancefn

import "vrppd-solver-core/internal/domain"

// Func is the distance-function capability the solvers are built against:
// a pure, deterministic, non-negative function of two Locations in
// kilometers. Symmetry is expected but not enforced.
type Func func(a, b domain.Location) float64
