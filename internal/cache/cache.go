// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

// Package cache provides the in-memory TTL cache that fronts the
// derived-state pipelines: skill profiles, recommendations, and training
// plans. All of them are expensive to recompute, so reads go through
// GetOrCompute, which coalesces concurrent regeneration of the same key
// with singleflight. Entries are keyed under a per-user prefix so a
// session write can invalidate everything derived for that user.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/stackwise/stackwise/internal/metrics"
)

// Entry is a cached item with expiration.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache is a thread-safe in-memory cache with TTL support and
// singleflight request coalescing.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	group   singleflight.Group
	stats   Stats

	cacheType string
}

// Stats tracks cache performance counters.
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a new thread-safe in-memory cache with automatic expiration.
//
// This constructor initializes a cache with the specified time-to-live (TTL) for all entries.
// It starts a background goroutine that performs cleanup every 5 minutes to remove expired entries.
//
// Parameters:
//   - cacheType: Label applied to the cache's Prometheus metrics (e.g. "profile")
//   - ttl: Default expiration duration for cache entries (e.g., 5 * time.Minute)
//
// Returns:
//   - Pointer to initialized Cache with background cleanup goroutine running
//
// Thread Safety:
//   - Safe for concurrent access from multiple goroutines
//   - Uses sync.RWMutex for read/write locking
//   - Background cleanup goroutine runs for cache lifetime
//
// Example:
//
//	c := cache.New("profile", 5*time.Minute)
//	c.Set(cache.UserKey("u1", "profile"), profile)
//	if data, ok := c.Get(cache.UserKey("u1", "profile")); ok {
//	    // Use cached data
//	}
func New(cacheType string, ttl time.Duration) *Cache {
	c := &Cache{
		entries:   make(map[string]Entry),
		ttl:       ttl,
		cacheType: cacheType,
		stats: Stats{
			LastCleanup: time.Now(),
		},
	}

	go c.cleanupLoop()

	return c
}

// Get retrieves a value by key. Expired entries count as misses and
// are removed on access.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with the cache's default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}

	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.mu.Unlock()
}

// GetOrCompute returns the cached value for key, or runs compute and
// caches its result.
//
// This method is the read path for all derived state. On a miss the compute
// function is executed through a singleflight group, so concurrent callers
// for the same key share one invocation and all receive its result.
//
// Parameters:
//   - ctx: Passed through to the compute function (the winning caller's context)
//   - key: Cache key string (use UserKey/GenerateKey for consistent key generation)
//   - compute: Produces the value on a miss; its result is stored with the default TTL
//
// Returns:
//   - interface{}: Cached or freshly computed value
//   - error: The compute function's error, shared by all coalesced callers
//
// Behavior:
//   - Returns the cached value immediately on a hit
//   - A failed compute caches nothing; the next caller retries
//   - Re-checks the cache inside the flight group before computing
//
// Thread Safety: Safe for concurrent use; coalescing is per key.
//
// Example:
//
//	v, err := c.GetOrCompute(ctx, cache.UserKey("u1", "profile"), func(ctx context.Context) (interface{}, error) {
//	    return buildProfile(ctx, "u1")
//	})
func (c *Cache) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have populated the entry while we
		// waited on the flight group.
		if cached, ok := c.Get(key); ok {
			return cached, nil
		}

		computed, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, computed)
		return computed, nil
	})
	return value, err
}

// Delete removes a specific entry. Safe to call for absent keys.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	c.recordEviction()
}

// DeletePrefix removes every entry whose key starts with prefix and
// returns the eviction count. Used to invalidate all derived state for
// one user after a session write.
func (c *Cache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	evicted := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			evicted++
		}
	}
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += int64(evicted)
	c.stats.TotalKeys -= int64(evicted)
	c.stats.mu.Unlock()
	metrics.CacheEvictions.WithLabelValues(c.cacheType).Add(float64(evicted))

	return evicted
}

// Clear removes all entries atomically.
func (c *Cache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = 0
	c.stats.mu.Unlock()
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *Cache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	evictions := int64(0)
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()
}

func (c *Cache) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
	metrics.CacheHits.WithLabelValues(c.cacheType).Inc()
}

func (c *Cache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
	metrics.CacheMisses.WithLabelValues(c.cacheType).Inc()
}

func (c *Cache) recordEviction() {
	c.stats.mu.Lock()
	c.stats.Evictions++
	c.stats.mu.Unlock()
	metrics.CacheEvictions.WithLabelValues(c.cacheType).Inc()
}

// GenerateKey builds a cache key from a method name and parameters.
// Parameters are JSON-hashed so structurally equal requests share a key.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}

// UserKey builds the per-user key prefix plus a suffix, e.g.
// UserKey("u1", "profile") -> "user:u1:profile". DeletePrefix with
// UserPrefix invalidates all of a user's entries.
func UserKey(userID, suffix string) string {
	return UserPrefix(userID) + suffix
}

// UserPrefix returns the key prefix under which all derived state for
// one user is cached.
func UserPrefix(userID string) string {
	return "user:" + userID + ":"
}
