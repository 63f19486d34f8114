package api

import (
	"net/http"

	"vrppd-solver-core/internal/api/handlers"
	"vrppd-solver-core/internal/ports"
	"vrppd-solver-core/internal/solver/psa"
)

// Deps bundles the adapters the router wires into handlers. Fields may be
// nil where a caller doesn't need that surface (e.g. Repo nil disables
// GET /runs/{id} and run persistence).
type Deps struct {
	Memo      ports.MemoCache
	Scorer    ports.ObjectiveScorer
	Repo      ports.RunRepository
	DistCache ports.DistanceCache
	PSACfg    psa.Config
	PSASeed   int64
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware
// of concrete adapters.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	progress := handlers.NewProgressRegistry()
	solveHandler := &handlers.SolveHandler{
		Memo:      deps.Memo,
		Scorer:    deps.Scorer,
		Repo:      deps.Repo,
		DistCache: deps.DistCache,
		PSACfg:    deps.PSACfg,
		PSASeed:   deps.PSASeed,
		Progress:  progress,
	}
	runHandler := &handlers.RunHandler{Repo: deps.Repo, Progress: progress}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/solve/exact", solveHandler.Exact)
	mux.HandleFunc("/solve/heuristic", solveHandler.Heuristic)
	mux.HandleFunc("/runs/", runHandler.Get)

	return loggingMiddleware(mux)
}
