package psa

import (
	"time"

	"vrppd-solver-core/internal/ports"
)

// Weights selects the relative probability of drawing each neighborhood
// operator during mutation (spec.md §4.4).
type Weights struct {
	Shift   float64
	Swap    float64
	Shuffle float64
}

// Config is the simulated-annealing tuning surface of spec.md §6.
type Config struct {
	InitialTemp   float64
	CoolingRate   float64
	MinTemp       float64
	MaxIterations int64
	BatchSize     int
	SyncInterval  int
	Weights       Weights

	// WallClockLimit optionally bounds total run time. It is not part of
	// the core algorithm (spec.md §5: "no timeouts on the core path"), but
	// an implementation may impose one; workers that stop early due to it
	// still report their personal best via DONE.
	WallClockLimit time.Duration

	// ObjectiveScript, when non-empty, is Lua source defining a global
	// "adjust" function. When set, the caller is expected to build a
	// scripting.LuaObjectiveScorer from it and pass that scorer to Solve;
	// the text travels with Config so a persisted run records exactly
	// which scoring rule produced its solution.
	ObjectiveScript string
}

// ToRecord converts Config into its persisted shape.
func (c Config) ToRecord() ports.HeuristicConfig {
	return ports.HeuristicConfig{
		InitialTemp:      c.InitialTemp,
		CoolingRate:      c.CoolingRate,
		MinTemp:          c.MinTemp,
		MaxIterations:    c.MaxIterations,
		BatchSize:        c.BatchSize,
		SyncInterval:     c.SyncInterval,
		Weights:          ports.HeuristicWeights(c.Weights),
		WallClockLimitMs: c.WallClockLimit.Milliseconds(),
		ObjectiveScript:  c.ObjectiveScript,
	}
}

// DefaultConfig returns the defaults named in spec.md §6.
func DefaultConfig() Config {
	return Config{
		InitialTemp:   1500,
		CoolingRate:   0.99,
		MinTemp:       0.1,
		MaxIterations: 10000,
		BatchSize:     50,
		SyncInterval:  200,
		Weights:       Weights{Shift: 0.4, Swap: 0.3, Shuffle: 0.3},
	}
}

// withDefaults fills any zero-valued fields with the spec defaults, so a
// caller only needs to set the fields they care about overriding.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.InitialTemp == 0 {
		c.InitialTemp = d.InitialTemp
	}
	if c.CoolingRate == 0 {
		c.CoolingRate = d.CoolingRate
	}
	if c.MinTemp == 0 {
		c.MinTemp = d.MinTemp
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.BatchSize == 0 {
		c.BatchSize = d.BatchSize
	}
	if c.SyncInterval == 0 {
		c.SyncInterval = d.SyncInterval
	}
	if c.Weights == (Weights{}) {
		c.Weights = d.Weights
	}
	return c
}
