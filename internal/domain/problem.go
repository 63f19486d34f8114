package domain

import "fmt"

// Problem is the full VRPPD instance: an ordered fleet, an ordered set of
// paired pickup/delivery orders, and a per-vehicle maximum-distance
// constraint.
type Problem struct {
	Vehicles         []Vehicle
	Orders           []Order
	MaxTotalDistance float64
}

// Validate enforces spec.md §3's Problem-level invariants: a nonempty
// fleet, a positive distance constraint, and unique IDs. Orders may be
// empty (spec.md §8's zero-orders boundary case: every vehicle ends up
// with an empty route).
func (p Problem) Validate() error {
	if len(p.Vehicles) == 0 {
		return fmt.Errorf("problem: must have at least one vehicle")
	}
	if p.MaxTotalDistance <= 0 {
		return fmt.Errorf("problem: maxTotalDistance must be > 0, got %g", p.MaxTotalDistance)
	}

	seenVehicle := make(map[int]struct{}, len(p.Vehicles))
	for _, v := range p.Vehicles {
		if _, dup := seenVehicle[v.ID]; dup {
			return fmt.Errorf("problem: duplicate vehicle id %d", v.ID)
		}
		seenVehicle[v.ID] = struct{}{}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("problem: %w", err)
		}
	}

	seenOrder := make(map[int]struct{}, len(p.Orders))
	for _, o := range p.Orders {
		if _, dup := seenOrder[o.ID]; dup {
			return fmt.Errorf("problem: duplicate order id %d", o.ID)
		}
		seenOrder[o.ID] = struct{}{}
		if err := o.Validate(); err != nil {
			return fmt.Errorf("problem: %w", err)
		}
	}

	return nil
}

// OrderByID returns the order with the given ID, or false if absent.
func (p Problem) OrderByID(id int) (Order, bool) {
	for _, o := range p.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// VehicleByID returns the vehicle with the given ID, or false if absent.
func (p Problem) VehicleByID(id int) (Vehicle, bool) {
	for _, v := range p.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}
