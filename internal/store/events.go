// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const eventColumns = `id, title, description, event_date, location, image_filenames, is_active, created_at, updated_at`

// CreateEventParams holds the values for CreateEvent.
type CreateEventParams struct {
	Title          string
	Description    string
	EventDate      string
	Location       string
	ImageFilenames string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateEvent inserts an event and returns its id.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (int64, error) {
	return q.insert(ctx,
		`INSERT INTO events (title, description, event_date, location, image_filenames, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Description, arg.EventDate, arg.Location, arg.ImageFilenames, arg.IsActive, arg.CreatedAt, arg.UpdatedAt,
	)
}

// GetEvent returns the event with the given id.
func (q *Queries) GetEvent(ctx context.Context, id int64) (Event, error) {
	var e Event
	err := q.get(ctx, &e, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return e, err
}

// ListEvents returns all events, newest first.
func (q *Queries) ListEvents(ctx context.Context) ([]Event, error) {
	var items []Event
	err := q.selectAll(ctx, &items, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id DESC`)
	return items, err
}

// ListActiveEvents returns active events ordered by event date.
func (q *Queries) ListActiveEvents(ctx context.Context) ([]Event, error) {
	var items []Event
	err := q.selectAll(ctx, &items, `SELECT `+eventColumns+` FROM events WHERE is_active = 1 ORDER BY event_date, id`)
	return items, err
}

// UpdateEventParams holds the values for UpdateEvent.
type UpdateEventParams struct {
	Title          string
	Description    string
	EventDate      string
	Location       string
	ImageFilenames string
	IsActive       bool
	UpdatedAt      time.Time
	ID             int64
}

// UpdateEvent rewrites all editable fields of an event.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) error {
	return q.execAffecting(ctx,
		`UPDATE events SET title = ?, description = ?, event_date = ?, location = ?, image_filenames = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.Description, arg.EventDate, arg.Location, arg.ImageFilenames, arg.IsActive, arg.UpdatedAt, arg.ID,
	)
}

// SetEventActiveParams holds the values for SetEventActive.
type SetEventActiveParams struct {
	IsActive  bool
	UpdatedAt time.Time
	ID        int64
}

// SetEventActive changes only the active flag and timestamp.
func (q *Queries) SetEventActive(ctx context.Context, arg SetEventActiveParams) error {
	return q.execAffecting(ctx, `UPDATE events SET is_active = ?, updated_at = ? WHERE id = ?`,
		arg.IsActive, arg.UpdatedAt, arg.ID)
}

// DeleteEvent removes an event row.
func (q *Queries) DeleteEvent(ctx context.Context, id int64) error {
	return q.execAffecting(ctx, `DELETE FROM events WHERE id = ?`, id)
}

// CountEvents returns the number of events.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM events`)
}
