// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_MemoryByDefault(t *testing.T) {
	c, backend := New(context.Background(), Config{DefaultTTL: time.Minute}, discardLogger())
	defer func() { _ = c.Close() }()

	if backend != "memory" {
		t.Errorf("backend = %q, want memory", backend)
	}
	if err := c.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
}
