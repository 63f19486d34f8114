package ports

import "vrppd-solver-core/internal/domain"

// ScoreContext carries the detail a scripted objective adjustment may want
// to condition on.
type ScoreContext struct {
	VehicleID int
	OrderID   int
	Target    domain.Target
}

// ObjectiveScorer adjusts a computed cost before it is compared against
// alternatives, letting an operator bias RCRS insertion cost or PSA
// energy without a code change. The identity scorer (Adjust returns cost
// unchanged) is the default when none is configured.
type ObjectiveScorer interface {
	Adjust(cost float64, ctx ScoreContext) float64
}

// IdentityScorer is the no-op ObjectiveScorer.
type IdentityScorer struct{}

func (IdentityScorer) Adjust(cost float64, _ ScoreContext) float64 { return cost }
