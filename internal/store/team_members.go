// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const teamMemberColumns = `id, name, position, bio, email, photo_filename, is_active, created_at, updated_at`

// CreateTeamMemberParams holds the values for CreateTeamMember.
type CreateTeamMemberParams struct {
	Name          string
	Position      string
	Bio           string
	Email         string
	PhotoFilename sql.NullString
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateTeamMember inserts a team member and returns its id.
func (q *Queries) CreateTeamMember(ctx context.Context, arg CreateTeamMemberParams) (int64, error) {
	return q.insert(ctx,
		`INSERT INTO team_members (name, position, bio, email, photo_filename, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Position, arg.Bio, arg.Email, arg.PhotoFilename, arg.IsActive, arg.CreatedAt, arg.UpdatedAt,
	)
}

// GetTeamMember returns the team member with the given id.
func (q *Queries) GetTeamMember(ctx context.Context, id int64) (TeamMember, error) {
	var m TeamMember
	err := q.get(ctx, &m, `SELECT `+teamMemberColumns+` FROM team_members WHERE id = ?`, id)
	return m, err
}

// ListTeamMembers returns all team members, newest first.
func (q *Queries) ListTeamMembers(ctx context.Context) ([]TeamMember, error) {
	var items []TeamMember
	err := q.selectAll(ctx, &items, `SELECT `+teamMemberColumns+` FROM team_members ORDER BY created_at DESC, id DESC`)
	return items, err
}

// ListActiveTeamMembers returns active team members in creation order.
func (q *Queries) ListActiveTeamMembers(ctx context.Context) ([]TeamMember, error) {
	var items []TeamMember
	err := q.selectAll(ctx, &items, `SELECT `+teamMemberColumns+` FROM team_members WHERE is_active = 1 ORDER BY id`)
	return items, err
}

// UpdateTeamMemberParams holds the values for UpdateTeamMember.
type UpdateTeamMemberParams struct {
	Name          string
	Position      string
	Bio           string
	Email         string
	PhotoFilename sql.NullString
	IsActive      bool
	UpdatedAt     time.Time
	ID            int64
}

// UpdateTeamMember rewrites all editable fields of a team member.
func (q *Queries) UpdateTeamMember(ctx context.Context, arg UpdateTeamMemberParams) error {
	return q.execAffecting(ctx,
		`UPDATE team_members SET name = ?, position = ?, bio = ?, email = ?, photo_filename = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Name, arg.Position, arg.Bio, arg.Email, arg.PhotoFilename, arg.IsActive, arg.UpdatedAt, arg.ID,
	)
}

// SetTeamMemberActiveParams holds the values for SetTeamMemberActive.
type SetTeamMemberActiveParams struct {
	IsActive  bool
	UpdatedAt time.Time
	ID        int64
}

// SetTeamMemberActive changes only the active flag and timestamp.
func (q *Queries) SetTeamMemberActive(ctx context.Context, arg SetTeamMemberActiveParams) error {
	return q.execAffecting(ctx, `UPDATE team_members SET is_active = ?, updated_at = ? WHERE id = ?`,
		arg.IsActive, arg.UpdatedAt, arg.ID)
}

// DeleteTeamMember removes a team member row.
func (q *Queries) DeleteTeamMember(ctx context.Context, id int64) error {
	return q.execAffecting(ctx, `DELETE FROM team_members WHERE id = ?`, id)
}

// CountTeamMembers returns the number of team members.
func (q *Queries) CountTeamMembers(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM team_members`)
}
