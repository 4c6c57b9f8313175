// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/olegiv/olanding/internal/store"
)

// Deps carries what every content service needs.
type Deps struct {
	Queries *store.Queries
	Uploads *UploadManager
	Cache   Invalidator // optional
	Logger  *slog.Logger
	Now     func() time.Time // optional, defaults to time.Now
}

// entityBase is embedded by the list-entity services.
type entityBase struct {
	queries *store.Queries
	uploads *UploadManager
	cache   Invalidator
	logger  *slog.Logger
	now     func() time.Time
}

func newEntityBase(d Deps) entityBase {
	b := entityBase{
		queries: d.Queries,
		uploads: d.Uploads,
		cache:   d.Cache,
		logger:  d.Logger,
		now:     d.Now,
	}
	if b.cache == nil {
		b.cache = nopInvalidator{}
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// saveOne stores an optional single upload. A nil upload yields a null name.
func (b *entityBase) saveOne(kind string, up *FileUpload) (sql.NullString, error) {
	if up == nil {
		return sql.NullString{}, nil
	}
	name, err := b.uploads.Save(kind, up)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: name, Valid: true}, nil
}

// saveMany stores every upload or none: on the first failure the files
// already written are removed again.
func (b *entityBase) saveMany(kind string, ups []*FileUpload) ([]string, error) {
	names := make([]string, 0, len(ups))
	for _, up := range ups {
		if up == nil {
			continue
		}
		name, err := b.uploads.Save(kind, up)
		if err != nil {
			b.uploads.RemoveAll(kind, names)
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// replaceSingle decides the new value of a 0..1 file reference and which
// old file becomes orphaned once the row is written.
func replaceSingle(current, uploaded sql.NullString, remove bool) (next sql.NullString, orphan string) {
	switch {
	case uploaded.Valid:
		next = uploaded
	case remove:
		next = sql.NullString{}
	default:
		next = current
	}
	if current.Valid && current.String != "" && (!next.Valid || next.String != current.String) {
		orphan = current.String
	}
	return next, orphan
}

func (b *entityBase) changed(ctx context.Context) {
	b.cache.Invalidate(ctx)
}
