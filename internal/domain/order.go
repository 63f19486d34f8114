package domain

import "fmt"

// Order is a paired pickup/delivery request. LoadFactor is a positive
// divisor: the normalized load contributed by one unit of this order is
// 1/LoadFactor against a route-wide capacity ceiling of 1.0.
type Order struct {
	ID         int
	Pickup     Location
	Delivery   Location
	LoadFactor float64
}

// Load returns the normalized load this order contributes to a route.
func (o Order) Load() float64 {
	return 1 / o.LoadFactor
}

// Validate checks the invariants spec.md §3 places on an Order in
// isolation (ID uniqueness is a Problem-level invariant, checked there).
func (o Order) Validate() error {
	if o.LoadFactor <= 0 {
		return fmt.Errorf("order %d: loadFactor must be > 0, got %g", o.ID, o.LoadFactor)
	}
	return nil
}
