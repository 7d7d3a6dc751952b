// Package cache is a Redis-backed store for completed analysis results,
// keyed by normalized subject address. Cache-aside: the CLI consults it
// before running the pipeline and writes back afterwards.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/analysis"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"
)

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a Store, or nil when caching is not configured.
func New(cfg config.Cache) *Store {
	if cfg.Addr == "" {
		return nil
	}
	return &Store{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr}),
		ttl:    cfg.TTL(),
	}
}

func key(address string) string {
	return "arv:analysis:" + types.NormalizeAddress(address)
}

// Get returns the cached result for the address, if any. Connection errors
// count as misses; a cold cache must never fail an analysis.
func (s *Store) Get(ctx context.Context, address string) (*analysis.Result, bool) {
	if s == nil {
		return nil, false
	}
	data, err := s.client.Get(ctx, key(address)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache read failed", "address", address, "error", err)
		}
		return nil, false
	}
	var res analysis.Result
	if err := json.Unmarshal(data, &res); err != nil {
		slog.Warn("cache entry corrupt, ignoring", "address", address, "error", err)
		return nil, false
	}
	return &res, true
}

// Set stores the result under the configured TTL.
func (s *Store) Set(ctx context.Context, address string, res *analysis.Result) error {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(address), data, s.ttl).Err()
}
