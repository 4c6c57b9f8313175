// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const adminUserColumns = `id, username, password_hash, created_at, last_login_at`

// CreateAdminUserParams holds the values for CreateAdminUser.
type CreateAdminUserParams struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateAdminUser inserts a new admin credential.
func (q *Queries) CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (AdminUser, error) {
	id, err := q.insert(ctx,
		`INSERT INTO admin_users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		arg.Username, arg.PasswordHash, arg.CreatedAt,
	)
	if err != nil {
		return AdminUser{}, err
	}
	return q.GetAdminUserByID(ctx, id)
}

// GetAdminUserByID returns the admin credential with the given id.
func (q *Queries) GetAdminUserByID(ctx context.Context, id int64) (AdminUser, error) {
	var u AdminUser
	err := q.get(ctx, &u, `SELECT `+adminUserColumns+` FROM admin_users WHERE id = ?`, id)
	return u, err
}

// GetAdminUserByUsername returns the admin credential with the given username.
func (q *Queries) GetAdminUserByUsername(ctx context.Context, username string) (AdminUser, error) {
	var u AdminUser
	err := q.get(ctx, &u, `SELECT `+adminUserColumns+` FROM admin_users WHERE username = ?`, username)
	return u, err
}

// UpdateAdminUserPasswordParams holds the values for UpdateAdminUserPassword.
type UpdateAdminUserPasswordParams struct {
	PasswordHash string
	ID           int64
}

// UpdateAdminUserPassword replaces the stored password hash.
func (q *Queries) UpdateAdminUserPassword(ctx context.Context, arg UpdateAdminUserPasswordParams) error {
	return q.execAffecting(ctx,
		`UPDATE admin_users SET password_hash = ? WHERE id = ?`,
		arg.PasswordHash, arg.ID,
	)
}

// UpdateAdminUserLastLoginParams holds the values for UpdateAdminUserLastLogin.
type UpdateAdminUserLastLoginParams struct {
	LastLoginAt sql.NullTime
	ID          int64
}

// UpdateAdminUserLastLogin records a successful login.
func (q *Queries) UpdateAdminUserLastLogin(ctx context.Context, arg UpdateAdminUserLastLoginParams) error {
	return q.execAffecting(ctx,
		`UPDATE admin_users SET last_login_at = ? WHERE id = ?`,
		arg.LastLoginAt, arg.ID,
	)
}
