// Package scripting adapts an embedded Lua script to ports.ObjectiveScorer,
// letting an operator bias RCRS insertion cost or PSA energy without a
// Go code change or redeploy.
package scripting

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"vrppd-solver-core/internal/ports"
)

// LuaObjectiveScorer evaluates a user-supplied Lua function named "adjust"
// taking (cost, vehicle_id, order_id, target) and returning the adjusted
// cost. The interpreter is not goroutine-safe, so calls are serialized
// behind a mutex; this lets the PSA workers, which run concurrently and
// all call Adjust, share one scorer.
type LuaObjectiveScorer struct {
	mu    sync.Mutex
	state *lua.LState
}

// NewLuaObjectiveScorer compiles script (expected to define a global
// function "adjust") and returns a scorer backed by it.
func NewLuaObjectiveScorer(script string) (*LuaObjectiveScorer, error) {
	state := lua.NewState()
	if err := state.DoString(script); err != nil {
		state.Close()
		return nil, fmt.Errorf("lua objective scorer: load script: %w", err)
	}
	if state.GetGlobal("adjust").Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("lua objective scorer: script does not define function 'adjust'")
	}
	return &LuaObjectiveScorer{state: state}, nil
}

// Close releases the underlying Lua state.
func (s *LuaObjectiveScorer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Close()
}

func (s *LuaObjectiveScorer) Adjust(cost float64, ctx ports.ScoreContext) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn := s.state.GetGlobal("adjust")
	if err := s.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	},
		lua.LNumber(cost),
		lua.LNumber(ctx.VehicleID),
		lua.LNumber(ctx.OrderID),
		lua.LString(string(ctx.Target)),
	); err != nil {
		// A misbehaving script must not crash a solve; fall back to the
		// unadjusted cost.
		return cost
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return cost
	}
	return float64(n)
}
