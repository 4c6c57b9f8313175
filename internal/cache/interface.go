// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the byte-oriented cache used for rendered landing
// page data, with in-memory and Redis backends.
package cache

import (
	"context"
	"sync/atomic"
	"time"
)

// Cache defines the interface for cache implementations.
// All implementations must be safe for concurrent use.
type Cache interface {
	// Get returns ErrCacheMiss when key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl means the default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error

	Close() error
}

// Stats reports cache usage counters.
type Stats struct {
	Hits   int64
	Misses int64
	Sets   int64
	Items  int
}

// StatsProvider is implemented by caches that track usage.
type StatsProvider interface {
	Stats() Stats
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// lifecycle is embedded by backends to reject use after Close.
type lifecycle struct {
	closed atomic.Bool
}

func (l *lifecycle) ensureOpen() error {
	if l.closed.Load() {
		return ErrCacheClosed
	}
	return nil
}

// markClosed reports whether this call was the one that closed the cache.
func (l *lifecycle) markClosed() bool {
	return l.closed.CompareAndSwap(false, true)
}

// counters are the usage counters shared by both backends.
type counters struct {
	hits, misses, sets atomic.Int64
}

func (c *counters) snapshot(items int) Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Sets:   c.sets.Load(),
		Items:  items,
	}
}
