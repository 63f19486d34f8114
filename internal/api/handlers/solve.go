package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"vrppd-solver-core/internal/adapters/scripting"
	"vrppd-solver-core/internal/api/dto"
	"vrppd-solver-core/internal/distancefn"
	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/matrix"
	"vrppd-solver-core/internal/platform/obs"
	"vrppd-solver-core/internal/ports"
	"vrppd-solver-core/internal/solver/exact"
	"vrppd-solver-core/internal/solver/psa"
)

// SolveHandler serves /solve/exact and /solve/heuristic. Both share the
// same request shape (dto.ProblemRequest) and persist their result via
// Repo so it can later be fetched from GET /runs/{id}.
type SolveHandler struct {
	Memo      ports.MemoCache
	Scorer    ports.ObjectiveScorer
	Repo      ports.RunRepository
	DistCache ports.DistanceCache
	PSACfg    psa.Config
	PSASeed   int64
	Progress  *ProgressRegistry
}

func (h *SolveHandler) distanceFn(name string) (distancefn.Func, error) {
	switch name {
	case "", "euclidean":
		return distancefn.Euclidean, nil
	case "great_circle":
		return distancefn.GreatCircle, nil
	default:
		return nil, errors.New("unknown distance_fn " + name)
	}
}

// Exact handles POST /solve/exact (spec.md §4.1). It rejects instances
// over the 7x7 size guard with 422 rather than 500.
func (h *SolveHandler) Exact(w http.ResponseWriter, r *http.Request) {
	var handlerErr error
	defer obs.Time(r.Context(), "handler.solve.exact")(&handlerErr)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	problem, target, err := req.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := problem.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	dist, err := h.distanceFn(req.DistanceFn)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	dist = distancefn.Cached(r.Context(), dist, h.DistCache)

	sol, err := exact.Solve(r.Context(), problem, dist, h.Memo)
	if err != nil {
		if errors.Is(err, domain.ErrProblemTooLarge) {
			writeError(w, r, http.StatusUnprocessableEntity, "problem_too_large")
			return
		}
		handlerErr = err
		writeError(w, r, http.StatusInternalServerError, "solve failed: "+err.Error())
		return
	}

	runID := uuid.NewString()
	if h.Repo != nil {
		run := ports.RunRecord{
			ID:            runID,
			CreatedAt:     time.Now(),
			Target:        target,
			Problem:       problem,
			ExactSolution: &sol,
		}
		if err := h.Repo.SaveRun(r.Context(), run); err != nil {
			log.Printf("solve exact: save run %s: %v", runID, err)
		}
	}

	w.Header().Set("X-Run-ID", runID)
	writeJSON(w, r, http.StatusOK, dto.ExactSolutionToDTO(sol))
}

// Heuristic handles POST /solve/heuristic (spec.md §4.3/§4.4).
func (h *SolveHandler) Heuristic(w http.ResponseWriter, r *http.Request) {
	var handlerErr error
	defer obs.Time(r.Context(), "handler.solve.heuristic")(&handlerErr)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	problem, target, err := req.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := problem.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	dist, err := h.distanceFn(req.DistanceFn)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	dist = distancefn.Cached(r.Context(), dist, h.DistCache)

	m := matrix.Build(problem, dist)

	cfg := req.Config.Apply(h.PSACfg)
	scorer := h.Scorer
	if cfg.ObjectiveScript != "" {
		s, err := scripting.NewLuaObjectiveScorer(cfg.ObjectiveScript)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		defer s.Close()
		scorer = s
	}

	runID := uuid.NewString()
	var live *atomic.Value
	if h.Progress != nil {
		live = h.Progress.Register(runID)
		defer h.Progress.Release(runID)
	}

	result, err := psa.Solve(r.Context(), problem, m, target, cfg, scorer, h.PSASeed, live)
	if err != nil {
		handlerErr = err
		writeError(w, r, http.StatusInternalServerError, "solve failed: "+err.Error())
		return
	}

	if h.Repo != nil {
		sol := result.Solution
		record := cfg.ToRecord()
		run := ports.RunRecord{
			ID:                runID,
			CreatedAt:         time.Now(),
			Target:            target,
			Problem:           problem,
			HeuristicSolution: &sol,
			Config:            &record,
			History:           result.History,
		}
		if err := h.Repo.SaveRun(r.Context(), run); err != nil {
			log.Printf("solve heuristic: save run %s: %v", runID, err)
		}
	}

	w.Header().Set("X-Run-ID", runID)
	writeJSON(w, r, http.StatusOK, dto.HeuristicSolutionToDTO(result.Solution, result.History))
}
