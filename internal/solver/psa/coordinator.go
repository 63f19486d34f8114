package psa

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/matrix"
	"vrppd-solver-core/internal/platform/obs"
	"vrppd-solver-core/internal/ports"
	"vrppd-solver-core/internal/solver/rcrs"
)

// Result is the outcome of a heuristic solve: the best solution found
// across every worker, and the convergence history of the run.
type Result struct {
	Solution domain.ProblemSolution
	History  []ports.ConvergencePoint
}

// Solve runs the parallel simulated annealing heuristic of spec.md §4.3.
// Every worker is seeded from one shared RCRS construction, then W
// independent annealers run concurrently in a one-way pipeline: each
// worker's periodic SYNC_REPORT is folded into the coordinator's global
// best and, except for the last worker in the pipeline, forwarded as an
// INFLUENCE_UPDATE to its successor.
//
// live, if non-nil, receives a copy of the global best every time it
// improves, stored behind atomic.Value so a goroutine serving a
// concurrent GET /runs/{id} can read the in-flight best without
// synchronizing with the collector goroutine below.
func Solve(
	ctx context.Context,
	p domain.Problem,
	m matrix.Matrices,
	target domain.Target,
	cfg Config,
	scorer ports.ObjectiveScorer,
	seed int64,
	live *atomic.Value,
) (result Result, err error) {
	defer obs.Time(ctx, "psa.Solve")(&err)

	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if len(p.Orders) == 0 {
		empty := domain.NewEmptyProblemSolution(p)
		if live != nil {
			live.Store(empty)
		}
		obs.SummarizeSolve(ctx, "heuristic", 0, empty.TotalDistance, empty.TotalPrice)
		return Result{Solution: empty}, nil
	}
	if scorer == nil {
		scorer = ports.IdentityScorer{}
	}
	cfg = cfg.withDefaults()

	if cfg.WallClockLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.WallClockLimit)
		defer cancel()
	}

	seedRng := rand.New(rand.NewSource(seed))
	initial := rcrs.Build(p, m, target, seedRng, scorer)

	workerCount := runtime.GOMAXPROCS(0)
	if workerCount < 2 {
		workerCount = 2
	}

	reportCh := make(chan syncReport)
	influenceChs := make([]chan influenceUpdate, workerCount)
	for i := range influenceChs {
		influenceChs[i] = make(chan influenceUpdate, 1)
	}
	doneCh := make(chan doneMsg, workerCount)

	workers := make([]*worker, workerCount)
	for i := 0; i < workerCount; i++ {
		jitter := 0.9 + seedRng.Float64()*0.3
		workerRng := rand.New(rand.NewSource(seed + int64(i) + 1))
		workers[i] = newWorker(
			i, p, m, target, initial.Clone(),
			cfg.InitialTemp*jitter, cfg, workerRng, scorer,
			influenceChs[i], reportCh,
		)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		w := w
		g.Go(func() (err error) {
			// A panicking worker still posts a DONE so the collector can
			// finish; its error cancels gctx for the remaining workers.
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("psa worker %d: %v", w.id, r)
					doneCh <- doneMsg{workerIdx: w.id, energy: math.Inf(1), err: err}
				}
			}()
			doneCh <- w.run(gctx)
			return nil
		})
	}

	start := time.Now()
	best := initial.Clone()
	bestEnergy := energy(best, true, target)
	var history []ports.ConvergencePoint

	publish := func(sol domain.ProblemSolution) {
		if live != nil {
			live.Store(sol)
		}
	}
	publish(best)

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		finished := 0
		for finished < workerCount {
			select {
			case report := <-reportCh:
				if report.energy < bestEnergy {
					bestEnergy = report.energy
					best = report.solution
					publish(best)
					history = append(history, ports.ConvergencePoint{
						ElapsedMs:       time.Since(start).Milliseconds(),
						TotalIterations: report.iterations,
						TotalDistance:   best.TotalDistance,
						TotalPrice:      best.TotalPrice,
						EmptyDistance:   best.EmptyDistance,
					})
				}
				if report.workerIdx+1 < workerCount {
					select {
					case influenceChs[report.workerIdx+1] <- influenceUpdate{solution: report.solution, energy: report.energy}:
					default:
					}
				}
			case done := <-doneCh:
				finished++
				if done.energy < bestEnergy {
					bestEnergy = done.energy
					best = done.solution
					publish(best)
				}
			}
		}
	}()

	waitErr := g.Wait()
	<-collectorDone

	var iterations int64
	if len(history) > 0 {
		iterations = history[len(history)-1].TotalIterations
	}
	obs.SummarizeSolve(ctx, "heuristic", iterations, best.TotalDistance, best.TotalPrice)

	return Result{Solution: best, History: history}, waitErr
}
