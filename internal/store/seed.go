// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/olanding/internal/auth"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "changeme"
)

// Seed creates the admin credential if it does not exist yet.
// Empty username or password fall back to the defaults.
func Seed(ctx context.Context, q *Queries, username, password string) error {
	if username == "" {
		username = DefaultAdminUsername
	}
	usingDefault := password == ""
	if usingDefault {
		password = DefaultAdminPassword
	}

	_, err := q.GetAdminUserByUsername(ctx, username)
	if err == nil {
		slog.Debug("admin user already exists, skipping seed", "username", username)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := q.CreateAdminUser(ctx, CreateAdminUserParams{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	if usingDefault {
		slog.Warn("created default admin user; change the password after first login",
			"id", user.ID,
			"username", user.Username,
		)
	} else {
		slog.Info("created admin user", "id", user.ID, "username", user.Username)
	}

	return nil
}
