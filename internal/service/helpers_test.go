// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/olanding/internal/store"
	"github.com/olegiv/olanding/internal/testutil"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type countingInvalidator struct {
	calls atomic.Int64
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.calls.Add(1)
}

type testEnv struct {
	queries *store.Queries
	uploads *UploadManager
	root    string
	cache   *countingInvalidator
	deps    Deps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestDB(t)
	q := store.New(db)
	root := t.TempDir()
	logger := testutil.DiscardLogger()

	um := NewUploadManager(root, 5<<20, logger)
	um.now = func() time.Time { return testNow }

	inv := &countingInvalidator{}
	return &testEnv{
		queries: q,
		uploads: um,
		root:    root,
		cache:   inv,
		deps: Deps{
			Queries: q,
			Uploads: um,
			Cache:   inv,
			Logger:  logger,
			Now:     func() time.Time { return testNow },
		},
	}
}

func pngUpload(t *testing.T, field, name string) *FileUpload {
	t.Helper()
	data := testutil.PNG(t, 12, 12)
	return &FileUpload{Field: field, Filename: name, Size: int64(len(data)), Content: bytes.NewReader(data)}
}

func (e *testEnv) path(kind, name string) string {
	return filepath.Join(e.root, kind, name)
}

func (e *testEnv) requireFile(t *testing.T, kind, name string) {
	t.Helper()
	_, err := os.Stat(e.path(kind, name))
	require.NoError(t, err, "expected %s/%s to exist", kind, name)
}

func (e *testEnv) requireNoFile(t *testing.T, kind, name string) {
	t.Helper()
	_, err := os.Stat(e.path(kind, name))
	require.True(t, os.IsNotExist(err), "expected %s/%s to be gone, stat error: %v", kind, name, err)
}

// blockRemoval makes os.Remove of kind/name fail by turning the path into
// a non-empty directory.
func (e *testEnv) blockRemoval(t *testing.T, kind, name string) {
	t.Helper()
	p := e.path(kind, name)
	require.NoError(t, os.RemoveAll(p))
	require.NoError(t, os.MkdirAll(filepath.Join(p, "keep"), 0o755))
}
