package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"vrppd-solver-core/internal/ports"
)

func newTestRedisMemoCache(t *testing.T) *RedisMemoCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c, err := NewRedisMemoCache([]*redis.Client{client}, "test")
	if err != nil {
		t.Fatalf("NewRedisMemoCache() error = %v", err)
	}
	return c
}

func TestRedisMemoCacheGetMissReturnsFalse(t *testing.T) {
	c := newTestRedisMemoCache(t)
	key := ports.MemoKey{VehicleIdx: 0, OrderMask: 0b1}

	_, ok, err := c.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Fatalf("Get() on an empty cache returned ok=true")
	}
}

func TestRedisMemoCachePutThenGetRoundTrips(t *testing.T) {
	c := newTestRedisMemoCache(t)
	key := ports.MemoKey{VehicleIdx: 2, OrderMask: 0b101}
	want := ports.TSPResult{
		Feasible:    true,
		MinDistance: ports.TSPRoute{TotalDistance: 12.5},
		MinPrice:    ports.TSPRoute{TotalDistance: 12.5, TotalPrice: 25},
	}

	if err := c.Put(context.Background(), key, want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := c.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatalf("Get() after Put = ok=false, want true")
	}
	if got.MinDistance.TotalDistance != want.MinDistance.TotalDistance {
		t.Errorf("Get() MinDistance.TotalDistance = %g, want %g", got.MinDistance.TotalDistance, want.MinDistance.TotalDistance)
	}
	if got.MinPrice.TotalPrice != want.MinPrice.TotalPrice {
		t.Errorf("Get() MinPrice.TotalPrice = %g, want %g", got.MinPrice.TotalPrice, want.MinPrice.TotalPrice)
	}
}

func TestNewRedisMemoCacheRejectsNoShards(t *testing.T) {
	if _, err := NewRedisMemoCache(nil, "test"); err == nil {
		t.Fatalf("NewRedisMemoCache(nil shards) error = nil, want an error")
	}
}
