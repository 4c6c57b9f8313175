// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestMemoryCache(t *testing.T, ttl time.Duration) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: ttl})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_BasicOperations(t *testing.T) {
	cache := newTestMemoryCache(t, time.Hour)
	ctx := context.Background()

	if err := cache.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", string(val))
	}

	if err := cache.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "key1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := newTestMemoryCache(t, time.Hour)
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}

	cache.removeExpired()
	if got := cache.Stats().Items; got != 0 {
		t.Errorf("Items after sweep = %d, want 0", got)
	}
}

func TestMemoryCache_ValueIsCopied(t *testing.T) {
	cache := newTestMemoryCache(t, time.Hour)
	ctx := context.Background()

	value := []byte("abc")
	_ = cache.Set(ctx, "k", value, 0)
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value changed through caller slice: %q", got)
	}
	got[1] = 'Y'
	again, _ := cache.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value changed through returned slice: %q", again)
	}
}

func TestMemoryCache_ClearAndStats(t *testing.T) {
	cache := newTestMemoryCache(t, time.Hour)
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []byte("1"), 0)
	_ = cache.Set(ctx, "b", []byte("2"), 0)
	_, _ = cache.Get(ctx, "a")
	_, _ = cache.Get(ctx, "missing")

	stats := cache.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 2 || stats.Items != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := cache.Stats().Items; got != 0 {
		t.Errorf("Items after Clear = %d, want 0", got)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour, CleanupInterval: time.Millisecond})
	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	ctx := context.Background()
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get on closed cache = %v, want ErrCacheClosed", err)
	}
	if err := cache.Set(ctx, "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set on closed cache = %v, want ErrCacheClosed", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestMemoryCache(t, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%5))
			_ = cache.Set(ctx, key, []byte{byte(n)}, 0)
			_, _ = cache.Get(ctx, key)
			if n%7 == 0 {
				_ = cache.Clear(ctx)
			}
		}(i)
	}
	wg.Wait()
}
