package handlers

import (
	"errors"
	"net/http"
	"strings"

	"vrppd-solver-core/internal/api/dto"
	"vrppd-solver-core/internal/ports"
)

// RunHandler serves GET /runs/{id}.
type RunHandler struct {
	Repo     ports.RunRepository
	Progress *ProgressRegistry
}

func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	if id == "" || id == r.URL.Path {
		writeError(w, r, http.StatusBadRequest, "missing run id")
		return
	}

	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "run storage not configured")
		return
	}

	run, err := h.Repo.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrRunNotFound) {
			if h.Progress != nil {
				if sol, ok := h.Progress.Snapshot(id); ok {
					writeJSON(w, r, http.StatusOK, dto.InProgressRunDTO(id, sol))
					return
				}
			}
			writeError(w, r, http.StatusNotFound, "run not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "get run failed: "+err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RunToDTO(run))
}
