package dto

import (
	"vrppd-solver-core/internal/domain"
	"vrppd-solver-core/internal/ports"
)

// RouteStopDTO is the wire shape of a domain.RouteStop.
type RouteStopDTO struct {
	OrderID int    `json:"order_id"`
	Type    string `json:"type"`
}

// VehicleRouteDTO is the wire shape of a domain.VehicleRoute.
type VehicleRouteDTO struct {
	Stops         []RouteStopDTO `json:"stops"`
	TotalDistance float64        `json:"total_distance"`
	EmptyDistance float64        `json:"empty_distance"`
	TotalPrice    float64        `json:"total_price"`
}

func routeToDTO(r domain.VehicleRoute) VehicleRouteDTO {
	stops := make([]RouteStopDTO, 0, len(r.Stops))
	for _, s := range r.Stops {
		stops = append(stops, RouteStopDTO{OrderID: s.OrderID, Type: string(s.Type)})
	}
	return VehicleRouteDTO{
		Stops:         stops,
		TotalDistance: r.TotalDistance,
		EmptyDistance: r.EmptyDistance,
		TotalPrice:    r.TotalPrice,
	}
}

// SolutionDTO is the wire shape of a domain.ProblemSolution.
type SolutionDTO struct {
	Routes        map[int]VehicleRouteDTO `json:"routes"`
	TotalDistance float64                 `json:"total_distance"`
	EmptyDistance float64                 `json:"empty_distance"`
	TotalPrice    float64                 `json:"total_price"`
}

func SolutionToDTO(s domain.ProblemSolution) SolutionDTO {
	routes := make(map[int]VehicleRouteDTO, len(s.Routes))
	for id, r := range s.Routes {
		routes[id] = routeToDTO(r)
	}
	return SolutionDTO{
		Routes:        routes,
		TotalDistance: s.TotalDistance,
		EmptyDistance: s.EmptyDistance,
		TotalPrice:    s.TotalPrice,
	}
}

// ExactSolutionDTO is the response body of /solve/exact: the three
// per-objective optimal solutions spec.md §4.1 produces in one pass.
type ExactSolutionDTO struct {
	BestDistance SolutionDTO `json:"best_distance"`
	BestPrice    SolutionDTO `json:"best_price"`
	BestEmpty    SolutionDTO `json:"best_empty"`
}

func ExactSolutionToDTO(s domain.AlgorithmSolution) ExactSolutionDTO {
	return ExactSolutionDTO{
		BestDistance: SolutionToDTO(s.BestDistance),
		BestPrice:    SolutionToDTO(s.BestPrice),
		BestEmpty:    SolutionToDTO(s.BestEmpty),
	}
}

// ConvergencePointDTO is the wire shape of a ports.ConvergencePoint.
type ConvergencePointDTO struct {
	ElapsedMs       int64   `json:"elapsed_ms"`
	TotalIterations int64   `json:"total_iterations"`
	TotalDistance   float64 `json:"total_distance"`
	TotalPrice      float64 `json:"total_price"`
	EmptyDistance   float64 `json:"empty_distance"`
}

// HeuristicSolutionDTO is the response body of /solve/heuristic.
type HeuristicSolutionDTO struct {
	Solution SolutionDTO           `json:"solution"`
	History  []ConvergencePointDTO `json:"history"`
}

func HeuristicSolutionToDTO(sol domain.ProblemSolution, history []ports.ConvergencePoint) HeuristicSolutionDTO {
	points := make([]ConvergencePointDTO, 0, len(history))
	for _, h := range history {
		points = append(points, ConvergencePointDTO{
			ElapsedMs:       h.ElapsedMs,
			TotalIterations: h.TotalIterations,
			TotalDistance:   h.TotalDistance,
			TotalPrice:      h.TotalPrice,
			EmptyDistance:   h.EmptyDistance,
		})
	}
	return HeuristicSolutionDTO{Solution: SolutionToDTO(sol), History: points}
}
