// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const schoolColumns = `id, name, description, address, website_url, logo_filename, is_active, created_at, updated_at`

// CreateSchoolParams holds the values for CreateSchool.
type CreateSchoolParams struct {
	Name         string
	Description  string
	Address      string
	WebsiteURL   string
	LogoFilename sql.NullString
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateSchool inserts a school and returns its id.
func (q *Queries) CreateSchool(ctx context.Context, arg CreateSchoolParams) (int64, error) {
	return q.insert(ctx,
		`INSERT INTO schools (name, description, address, website_url, logo_filename, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Description, arg.Address, arg.WebsiteURL, arg.LogoFilename, arg.IsActive, arg.CreatedAt, arg.UpdatedAt,
	)
}

// GetSchool returns the school with the given id.
func (q *Queries) GetSchool(ctx context.Context, id int64) (School, error) {
	var s School
	err := q.get(ctx, &s, `SELECT `+schoolColumns+` FROM schools WHERE id = ?`, id)
	return s, err
}

// ListSchools returns all schools, newest first.
func (q *Queries) ListSchools(ctx context.Context) ([]School, error) {
	var items []School
	err := q.selectAll(ctx, &items, `SELECT `+schoolColumns+` FROM schools ORDER BY created_at DESC, id DESC`)
	return items, err
}

// ListActiveSchools returns active schools in creation order.
func (q *Queries) ListActiveSchools(ctx context.Context) ([]School, error) {
	var items []School
	err := q.selectAll(ctx, &items, `SELECT `+schoolColumns+` FROM schools WHERE is_active = 1 ORDER BY id`)
	return items, err
}

// UpdateSchoolParams holds the values for UpdateSchool.
type UpdateSchoolParams struct {
	Name         string
	Description  string
	Address      string
	WebsiteURL   string
	LogoFilename sql.NullString
	IsActive     bool
	UpdatedAt    time.Time
	ID           int64
}

// UpdateSchool rewrites all editable fields of a school.
func (q *Queries) UpdateSchool(ctx context.Context, arg UpdateSchoolParams) error {
	return q.execAffecting(ctx,
		`UPDATE schools SET name = ?, description = ?, address = ?, website_url = ?, logo_filename = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Name, arg.Description, arg.Address, arg.WebsiteURL, arg.LogoFilename, arg.IsActive, arg.UpdatedAt, arg.ID,
	)
}

// SetSchoolActiveParams holds the values for SetSchoolActive.
type SetSchoolActiveParams struct {
	IsActive  bool
	UpdatedAt time.Time
	ID        int64
}

// SetSchoolActive changes only the active flag and timestamp.
func (q *Queries) SetSchoolActive(ctx context.Context, arg SetSchoolActiveParams) error {
	return q.execAffecting(ctx, `UPDATE schools SET is_active = ?, updated_at = ? WHERE id = ?`,
		arg.IsActive, arg.UpdatedAt, arg.ID)
}

// DeleteSchool removes a school row.
func (q *Queries) DeleteSchool(ctx context.Context, id int64) error {
	return q.execAffecting(ctx, `DELETE FROM schools WHERE id = ?`, id)
}

// CountSchools returns the number of schools.
func (q *Queries) CountSchools(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM schools`)
}
