package exact

import (
	"context"

	"vrppd-solver-core/internal/ports"
)

// inProcessMemo is the default held-Karp memo cache: an in-process map
// scoped to a single solve call, per spec.md §3's lifecycle note that
// matrices (and therefore memoized subsolves) are built once per call.
// It is not safe for concurrent use — the exact solver never spawns
// goroutines, so none is needed.
type inProcessMemo struct {
	m map[ports.MemoKey]ports.TSPResult
}

func newInProcessMemo() *inProcessMemo {
	return &inProcessMemo{m: make(map[ports.MemoKey]ports.TSPResult)}
}

func (c *inProcessMemo) Get(_ context.Context, key ports.MemoKey) (ports.TSPResult, bool, error) {
	v, ok := c.m[key]
	return v, ok, nil
}

func (c *inProcessMemo) Put(_ context.Context, key ports.MemoKey, result ports.TSPResult) error {
	c.m[key] = result
	return nil
}
