// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"
)

// TypedCache stores JSON-encoded values of type T in a Cache.
type TypedCache[T any] struct {
	cache Cache
	ttl   time.Duration

	// gen is bumped by every Delete. GetOrLoad does not store a value whose
	// load overlapped a Delete.
	gen atomic.Uint64
}

// NewTypedCache wraps c. A zero ttl defers to the backend default.
func NewTypedCache[T any](c Cache, ttl time.Duration) *TypedCache[T] {
	return &TypedCache[T]{cache: c, ttl: ttl}
}

// Get returns the cached value and true, or nil and false on a miss or a
// value that no longer decodes.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return &value, true
}

// Set stores value under key.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, key, data, c.ttl)
}

// Delete removes key and discards any load still in flight.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	c.gen.Add(1)
	return c.cache.Delete(ctx, key)
}

// GetOrLoad returns the cached value or calls load and caches its result.
// A result is not cached when Delete ran while it was loading, since it may
// predate the change that caused the Delete. Cache write failures are
// ignored; the loaded value is still returned.
func (c *TypedCache[T]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (*T, error)) (*T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	gen := c.gen.Load()
	value, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if c.gen.Load() != gen {
		return value, nil
	}
	_ = c.Set(ctx, key, value)
	if c.gen.Load() != gen {
		// A Delete landed between the check and the write.
		_ = c.cache.Delete(ctx, key)
	}
	return value, nil
}
