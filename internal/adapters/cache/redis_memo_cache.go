package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-rendezvous"
	"github.com/redis/go-redis/v9"

	"vrppd-solver-core/internal/ports"
)

// RedisMemoCache is a cross-process ports.MemoCache backed by a set of
// Redis shards selected by rendezvous (highest random weight) hashing, so
// a given (vehicle, order subset) key always routes to the same shard
// regardless of how many other keys exist, and adding/removing a shard
// only remaps the keys that hashed to it. This is never required for
// correctness of the exact solver (spec.md §4.1); it exists so a fleet of
// solver processes working the same instance can share TSP subresults.
type RedisMemoCache struct {
	shards   []*redis.Client
	labels   map[string]int
	rdv      *rendezvous.Rendezvous
	keyspace string
}

// NewRedisMemoCache builds a cache over shards, a label per client purely
// for rendezvous bookkeeping. keyspace namespaces keys so multiple solves
// (or multiple problems) sharing the same Redis instance don't collide.
func NewRedisMemoCache(shards []*redis.Client, keyspace string) (*RedisMemoCache, error) {
	if len(shards) == 0 {
		return nil, errors.New("redis memo cache: at least one shard is required")
	}

	labelNames := make([]string, len(shards))
	labels := make(map[string]int, len(shards))
	for i := range shards {
		name := fmt.Sprintf("shard-%d", i)
		labelNames[i] = name
		labels[name] = i
	}

	return &RedisMemoCache{
		shards:   shards,
		labels:   labels,
		rdv:      rendezvous.New(labelNames, xxhash.Sum64String),
		keyspace: keyspace,
	}, nil
}

func (c *RedisMemoCache) shardFor(k string) *redis.Client {
	label := c.rdv.Lookup(k)
	return c.shards[c.labels[label]]
}

func (c *RedisMemoCache) redisKey(key ports.MemoKey) string {
	return fmt.Sprintf("%s:memo:%d:%x", c.keyspace, key.VehicleIdx, key.OrderMask)
}

func (c *RedisMemoCache) Get(ctx context.Context, key ports.MemoKey) (ports.TSPResult, bool, error) {
	rk := c.redisKey(key)
	raw, err := c.shardFor(rk).Get(ctx, rk).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.TSPResult{}, false, nil
	}
	if err != nil {
		return ports.TSPResult{}, false, fmt.Errorf("redis memo cache: get %s: %w", rk, err)
	}

	var result ports.TSPResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return ports.TSPResult{}, false, fmt.Errorf("redis memo cache: decode %s: %w", rk, err)
	}
	return result, true, nil
}

func (c *RedisMemoCache) Put(ctx context.Context, key ports.MemoKey, result ports.TSPResult) error {
	rk := c.redisKey(key)
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("redis memo cache: encode %s: %w", rk, err)
	}
	if err := c.shardFor(rk).Set(ctx, rk, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis memo cache: put %s: %w", rk, err)
	}
	return nil
}
