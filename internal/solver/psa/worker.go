package psa

import (
	"context"
	"math"
	"math/rand"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/matrix"
	"vrppd-solver-core/internal/ports"
)

// state is the worker's lifecycle per spec.md §4.4:
// UNINITIALIZED -> RUNNING -> TERMINATED.
type state int

const (
	stateUninitialized state = iota
	stateRunning
	stateTerminated
)

// reheatFloor is the temperature a worker is raised to after adopting an
// improving influence (spec.md §4.4 "Reheat").
const reheatFloor = 50

// worker runs one independent SA loop. It owns currentSolution,
// temperature, iterationCount, and personal best exclusively; the only
// state that crosses its boundary is serialized solution snapshots sent
// over reportCh and received over influenceCh.
type worker struct {
	id       int
	problem  domain.Problem
	matrices matrix.Matrices
	target   domain.Target
	cfg      Config
	rng      *rand.Rand
	scorer   ports.ObjectiveScorer

	influenceCh <-chan influenceUpdate
	reportCh    chan<- syncReport

	state           state
	current         domain.ProblemSolution
	currentEnergy   float64
	bestLocal       domain.ProblemSolution
	bestLocalEnergy float64
	temperature     float64
	iteration       int64
}

func newWorker(
	id int,
	p domain.Problem,
	m matrix.Matrices,
	target domain.Target,
	initial domain.ProblemSolution,
	initialTemp float64,
	cfg Config,
	rng *rand.Rand,
	scorer ports.ObjectiveScorer,
	influenceCh <-chan influenceUpdate,
	reportCh chan<- syncReport,
) *worker {
	if scorer == nil {
		scorer = ports.IdentityScorer{}
	}
	e := energy(initial, true, target)
	return &worker{
		id:              id,
		problem:         p,
		matrices:        m,
		target:          target,
		cfg:             cfg,
		rng:             rng,
		scorer:          scorer,
		influenceCh:     influenceCh,
		reportCh:        reportCh,
		state:           stateUninitialized,
		current:         initial,
		currentEnergy:   e,
		bestLocal:       initial,
		bestLocalEnergy: e,
		temperature:     initialTemp,
	}
}

// run executes the main loop of spec.md §4.4: batches of SA iterations
// interleaved with yields that drain incoming INFLUENCE_UPDATE messages,
// periodic SYNC_REPORT, and a final DONE.
func (w *worker) run(ctx context.Context) doneMsg {
	if w.state != stateUninitialized {
		return doneMsg{workerIdx: w.id, energy: w.bestLocalEnergy, solution: w.bestLocal}
	}
	w.state = stateRunning

	batchesSinceSync := 0
	for w.iteration < w.cfg.MaxIterations && w.temperature >= w.cfg.MinTemp {
		if ctx.Err() != nil {
			break
		}

		w.runBatch()
		batchesSinceSync++

		if batchesSinceSync >= w.cfg.SyncInterval {
			batchesSinceSync = 0
			w.sendReport(ctx)
		}

		w.drainInfluence()
	}

	w.state = stateTerminated
	return doneMsg{workerIdx: w.id, energy: w.bestLocalEnergy, solution: w.bestLocal.Clone()}
}

func (w *worker) runBatch() {
	for i := 0; i < w.cfg.BatchSize; i++ {
		if w.iteration >= w.cfg.MaxIterations || w.temperature < w.cfg.MinTemp {
			return
		}

		neighbor, feasible := mutate(w.current, w.problem, w.matrices, w.rng, w.cfg.Weights)
		neighborEnergy := energy(neighbor, feasible, w.target)
		neighborEnergy = w.scorer.Adjust(neighborEnergy, ports.ScoreContext{Target: w.target})

		accept := neighborEnergy < w.currentEnergy ||
			w.rng.Float64() < math.Exp(-(neighborEnergy-w.currentEnergy)/w.temperature)

		if accept {
			w.current = neighbor
			w.currentEnergy = neighborEnergy
			if neighborEnergy < w.bestLocalEnergy {
				w.bestLocalEnergy = neighborEnergy
				w.bestLocal = neighbor.Clone()
			}
		}

		w.temperature *= w.cfg.CoolingRate
		w.iteration++
	}
}

func (w *worker) drainInfluence() {
	for {
		select {
		case msg := <-w.influenceCh:
			w.handleInfluence(msg)
		default:
			return
		}
	}
}

// handleInfluence implements spec.md §4.4's INFLUENCE_UPDATE handling:
// adopt-if-improving, perturb once to avoid cloning the sender, reheat.
func (w *worker) handleInfluence(msg influenceUpdate) {
	if msg.energy >= w.currentEnergy {
		return
	}

	w.current = msg.solution.Clone()
	w.currentEnergy = msg.energy

	if perturbed, feasible := mutate(w.current, w.problem, w.matrices, w.rng, w.cfg.Weights); feasible {
		w.current = perturbed
		w.currentEnergy = w.scorer.Adjust(energy(perturbed, feasible, w.target), ports.ScoreContext{Target: w.target})
	}

	if w.currentEnergy < w.bestLocalEnergy {
		w.bestLocalEnergy = w.currentEnergy
		w.bestLocal = w.current.Clone()
	}

	w.temperature = math.Max(w.temperature, reheatFloor)
}

func (w *worker) sendReport(ctx context.Context) {
	report := syncReport{
		workerIdx:  w.id,
		iterations: w.iteration,
		energy:     w.bestLocalEnergy,
		solution:   w.bestLocal.Clone(),
	}
	select {
	case w.reportCh <- report:
	case <-ctx.Done():
	}
}
