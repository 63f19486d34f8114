package dto

import (
	"fmt"
	"time"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/solver/psa"
)

// LocationDTO is the wire shape of a domain.Location.
type LocationDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (d LocationDTO) toDomain() domain.Location {
	return domain.NewLocation(d.Lat, d.Lon)
}

// VehicleDTO is the wire shape of a domain.Vehicle.
type VehicleDTO struct {
	ID      int         `json:"id"`
	Start   LocationDTO `json:"start"`
	PriceKm float64     `json:"price_km"`
}

// OrderDTO is the wire shape of a domain.Order.
type OrderDTO struct {
	ID         int         `json:"id"`
	Pickup     LocationDTO `json:"pickup"`
	Delivery   LocationDTO `json:"delivery"`
	LoadFactor float64     `json:"load_factor"`
}

// WeightsDTO is the wire shape of psa.Weights.
type WeightsDTO struct {
	Shift   float64 `json:"shift"`
	Swap    float64 `json:"swap"`
	Shuffle float64 `json:"shuffle"`
}

// ConfigDTO is the optional PSA tuning surface accepted by
// /solve/heuristic. Any zero-valued field falls back to psa.DefaultConfig.
type ConfigDTO struct {
	InitialTemp      float64     `json:"initial_temp"`
	CoolingRate      float64     `json:"cooling_rate"`
	MinTemp          float64     `json:"min_temp"`
	MaxIterations    int64       `json:"max_iterations"`
	BatchSize        int         `json:"batch_size"`
	SyncInterval     int         `json:"sync_interval"`
	Weights          *WeightsDTO `json:"weights,omitempty"`
	WallClockLimitMs int64       `json:"wall_clock_limit_ms"`
	// ObjectiveScript, when set, is Lua source defining a global "adjust"
	// function applied to every candidate cost computed during the solve.
	ObjectiveScript string `json:"objective_script,omitempty"`
}

// Apply overlays the request's config onto base, which should already be
// psa.DefaultConfig() or a server-wide default.
func (c *ConfigDTO) Apply(base psa.Config) psa.Config {
	if c == nil {
		return base
	}
	out := base
	if c.InitialTemp != 0 {
		out.InitialTemp = c.InitialTemp
	}
	if c.CoolingRate != 0 {
		out.CoolingRate = c.CoolingRate
	}
	if c.MinTemp != 0 {
		out.MinTemp = c.MinTemp
	}
	if c.MaxIterations != 0 {
		out.MaxIterations = c.MaxIterations
	}
	if c.BatchSize != 0 {
		out.BatchSize = c.BatchSize
	}
	if c.SyncInterval != 0 {
		out.SyncInterval = c.SyncInterval
	}
	if c.Weights != nil {
		out.Weights = psa.Weights{Shift: c.Weights.Shift, Swap: c.Weights.Swap, Shuffle: c.Weights.Shuffle}
	}
	if c.WallClockLimitMs != 0 {
		out.WallClockLimit = time.Duration(c.WallClockLimitMs) * time.Millisecond
	}
	if c.ObjectiveScript != "" {
		out.ObjectiveScript = c.ObjectiveScript
	}
	return out
}

// ProblemRequest is the request body shared by /solve/exact and
// /solve/heuristic. Config is ignored by /solve/exact.
type ProblemRequest struct {
	Vehicles         []VehicleDTO `json:"vehicles"`
	Orders           []OrderDTO   `json:"orders"`
	MaxTotalDistance float64      `json:"max_total_distance"`
	DistanceFn       string       `json:"distance_fn"` // "euclidean" (default) or "great_circle"
	Target           string       `json:"target"`      // "distance" (default), "price", or "empty"
	Config           *ConfigDTO   `json:"config,omitempty"`
}

// ToDomain converts the wire request into a domain.Problem plus the
// resolved objective target. It does not call Problem.Validate; callers
// do that explicitly so validation errors surface uniformly.
func (req ProblemRequest) ToDomain() (domain.Problem, domain.Target, error) {
	vehicles := make([]domain.Vehicle, 0, len(req.Vehicles))
	for _, v := range req.Vehicles {
		vehicles = append(vehicles, domain.Vehicle{
			ID:      v.ID,
			Start:   v.Start.toDomain(),
			PriceKm: v.PriceKm,
		})
	}

	orders := make([]domain.Order, 0, len(req.Orders))
	for _, o := range req.Orders {
		orders = append(orders, domain.Order{
			ID:         o.ID,
			Pickup:     o.Pickup.toDomain(),
			Delivery:   o.Delivery.toDomain(),
			LoadFactor: o.LoadFactor,
		})
	}

	target, err := parseTarget(req.Target)
	if err != nil {
		return domain.Problem{}, "", err
	}

	return domain.Problem{
		Vehicles:         vehicles,
		Orders:           orders,
		MaxTotalDistance: req.MaxTotalDistance,
	}, target, nil
}

func parseTarget(raw string) (domain.Target, error) {
	switch raw {
	case "", string(domain.TargetDistance):
		return domain.TargetDistance, nil
	case string(domain.TargetPrice):
		return domain.TargetPrice, nil
	case string(domain.TargetEmpty):
		return domain.TargetEmpty, nil
	default:
		return "", fmt.Errorf("unknown target %q", raw)
	}
}
