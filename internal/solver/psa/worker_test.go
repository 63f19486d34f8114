package psa

import (
	"context"
	"math/rand"
	"testing"

	"vrppd-solver-core/internal/distancefn"
	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/matrix"
	"vrppd-solver-core/internal/ports"
	"vrppd-solver-core/internal/solver/rcrs"
)

func smallProblem() domain.Problem {
	return domain.Problem{
		Vehicles: []domain.Vehicle{
			{ID: 1, Start: domain.NewLocation(0, 0), PriceKm: 1},
			{ID: 2, Start: domain.NewLocation(20, 20), PriceKm: 1},
		},
		Orders: []domain.Order{
			{ID: 1, Pickup: domain.NewLocation(1, 0), Delivery: domain.NewLocation(2, 0), LoadFactor: 1},
			{ID: 2, Pickup: domain.NewLocation(21, 20), Delivery: domain.NewLocation(22, 20), LoadFactor: 1},
			{ID: 3, Pickup: domain.NewLocation(3, 0), Delivery: domain.NewLocation(4, 0), LoadFactor: 1},
		},
		MaxTotalDistance: 1000,
	}
}

func TestWorkerRunTerminatesWithinBounds(t *testing.T) {
	p := smallProblem()
	m := matrix.Build(p, distancefn.Euclidean)
	rng := rand.New(rand.NewSource(7))
	initial := rcrs.Build(p, m, domain.TargetDistance, rng, ports.IdentityScorer{})

	cfg := Config{
		InitialTemp:   100,
		CoolingRate:   0.8,
		MinTemp:       1,
		MaxIterations: 500,
		BatchSize:     10,
		SyncInterval:  1000000, // large enough that run() finishes before reporting
	}

	influenceCh := make(chan influenceUpdate, 1)
	reportCh := make(chan syncReport, 10)
	w := newWorker(0, p, m, domain.TargetDistance, initial, cfg.InitialTemp, cfg, rng, ports.IdentityScorer{}, influenceCh, reportCh)

	done := w.run(context.Background())

	if done.workerIdx != 0 {
		t.Errorf("doneMsg.workerIdx = %d, want 0", done.workerIdx)
	}
	if w.iteration > cfg.MaxIterations {
		t.Errorf("worker ran %d iterations, want <= MaxIterations (%d)", w.iteration, cfg.MaxIterations)
	}
	if w.temperature >= cfg.MinTemp && w.iteration < cfg.MaxIterations {
		t.Errorf("worker stopped with temperature=%g >= MinTemp=%g and iteration=%d < MaxIterations, want one bound hit", w.temperature, cfg.MinTemp, w.iteration)
	}
	if done.solution.Routes == nil {
		t.Errorf("doneMsg.solution has nil Routes, want a populated best-local solution")
	}
}

func TestWorkerHandleInfluenceAdoptsOnlyWhenImproving(t *testing.T) {
	p := smallProblem()
	m := matrix.Build(p, distancefn.Euclidean)
	rng := rand.New(rand.NewSource(1))
	initial := rcrs.Build(p, m, domain.TargetDistance, rng, ports.IdentityScorer{})

	cfg := DefaultConfig()
	w := newWorker(0, p, m, domain.TargetDistance, initial, cfg.InitialTemp, cfg, rng, ports.IdentityScorer{}, nil, nil)
	startEnergy := w.currentEnergy

	w.handleInfluence(influenceUpdate{solution: initial, energy: startEnergy + 1000})
	if w.currentEnergy != startEnergy {
		t.Errorf("handleInfluence adopted a worse energy: currentEnergy=%g, want unchanged %g", w.currentEnergy, startEnergy)
	}

	w.temperature = 10 // below reheatFloor, to make the reheat observable
	w.handleInfluence(influenceUpdate{solution: initial, energy: startEnergy - 1})
	if w.temperature < reheatFloor {
		t.Errorf("handleInfluence after adopting an improving influence left temperature=%g, want >= reheatFloor=%g", w.temperature, float64(reheatFloor))
	}
}
