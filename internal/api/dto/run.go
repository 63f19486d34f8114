package dto

import (
	"time"

	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/ports"
)

// RunDTO is the response body of GET /runs/{id}. InProgress is set when
// the record reflects the PSA coordinator's current global best for a
// heuristic solve that hasn't finished and persisted yet.
type RunDTO struct {
	ID                string                `json:"id"`
	CreatedAt         time.Time             `json:"created_at"`
	Target            string                `json:"target"`
	ExactSolution     *ExactSolutionDTO     `json:"exact_solution,omitempty"`
	HeuristicSolution *SolutionDTO          `json:"heuristic_solution,omitempty"`
	Config            *ConfigDTO            `json:"config,omitempty"`
	History           []ConvergencePointDTO `json:"history,omitempty"`
	InProgress        bool                  `json:"in_progress,omitempty"`
}

// InProgressRunDTO reports a heuristic solve's live global best while the
// coordinator is still running.
func InProgressRunDTO(id string, sol domain.ProblemSolution) RunDTO {
	s := SolutionToDTO(sol)
	return RunDTO{
		ID:                id,
		HeuristicSolution: &s,
		InProgress:        true,
	}
}

func RunToDTO(r ports.RunRecord) RunDTO {
	out := RunDTO{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Target:    string(r.Target),
	}

	if r.ExactSolution != nil {
		s := ExactSolutionToDTO(*r.ExactSolution)
		out.ExactSolution = &s
	}

	if r.HeuristicSolution != nil {
		s := SolutionToDTO(*r.HeuristicSolution)
		out.HeuristicSolution = &s
	}

	if r.Config != nil {
		out.Config = &ConfigDTO{
			InitialTemp:      r.Config.InitialTemp,
			CoolingRate:      r.Config.CoolingRate,
			MinTemp:          r.Config.MinTemp,
			MaxIterations:    r.Config.MaxIterations,
			BatchSize:        r.Config.BatchSize,
			SyncInterval:     r.Config.SyncInterval,
			Weights:          &WeightsDTO{Shift: r.Config.Weights.Shift, Swap: r.Config.Weights.Swap, Shuffle: r.Config.Weights.Shuffle},
			WallClockLimitMs: r.Config.WallClockLimitMs,
			ObjectiveScript:  r.Config.ObjectiveScript,
		}
	}

	if len(r.History) > 0 {
		points := make([]ConvergencePointDTO, 0, len(r.History))
		for _, h := range r.History {
			points = append(points, ConvergencePointDTO{
				ElapsedMs:       h.ElapsedMs,
				TotalIterations: h.TotalIterations,
				TotalDistance:   h.TotalDistance,
				TotalPrice:      h.TotalPrice,
				EmptyDistance:   h.EmptyDistance,
			})
		}
		out.History = points
	}

	return out
}
