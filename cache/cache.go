// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package cache provides an in-process cache for retrieval results.
// Repeated queries against an unchanged paper library are common in
// interactive use, and skipping the embedding call alone saves a
// network round trip per repeat.
package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/poiesic/papyrus/core"
)

const (
	// DefaultMaxCost bounds the cache's memory footprint in bytes of
	// estimated entry cost.
	DefaultMaxCost = 64 << 20 // 64 MiB

	// DefaultTTL is how long a cached result set stays valid.
	DefaultTTL = 5 * time.Minute
)

// QueryCache caches retrieval result sets keyed by namespace, query,
// and result count. Entries expire on a TTL rather than being
// invalidated per write; a freshly ingested paper becomes visible to
// repeated queries within the TTL window.
type QueryCache struct {
	cache *ristretto.Cache[string, []core.QueryMatch]
	ttl   time.Duration
}

// Option configures a QueryCache.
type Option func(*config)

type config struct {
	maxCost int64
	ttl     time.Duration
}

// WithMaxCost sets the cache's cost budget.
func WithMaxCost(maxCost int64) Option {
	return func(c *config) {
		c.maxCost = maxCost
	}
}

// WithTTL sets the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// NewQueryCache creates a query cache with the default budget, applying
// any options.
func NewQueryCache(opts ...Option) (*QueryCache, error) {
	cfg := &config{
		maxCost: DefaultMaxCost,
		ttl:     DefaultTTL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rc, err := ristretto.NewCache(&ristretto.Config[string, []core.QueryMatch]{
		NumCounters: 1e6,
		MaxCost:     cfg.maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &QueryCache{cache: rc, ttl: cfg.ttl}, nil
}

// Get returns a cached result set, if present.
func (c *QueryCache) Get(namespace, query string, topK int) ([]core.QueryMatch, bool) {
	return c.cache.Get(cacheKey(namespace, query, topK))
}

// Set stores a result set. Cost is estimated from the previews held in
// the matches.
func (c *QueryCache) Set(namespace, query string, topK int, matches []core.QueryMatch) {
	var cost int64
	for _, m := range matches {
		cost += int64(len(m.Text) + len(m.Id) + 64)
	}
	if cost == 0 {
		cost = 1
	}
	c.cache.SetWithTTL(cacheKey(namespace, query, topK), matches, cost, c.ttl)
}

// Wait blocks until pending writes are visible. Intended for tests.
func (c *QueryCache) Wait() {
	c.cache.Wait()
}

// Clear drops every cached entry.
func (c *QueryCache) Clear() {
	c.cache.Clear()
}

// Close releases the cache's resources.
func (c *QueryCache) Close() {
	c.cache.Close()
}

func cacheKey(namespace, query string, topK int) string {
	return fmt.Sprintf("%s|%d|%s", namespace, topK, query)
}
