// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/olanding/internal/auth"
	"github.com/olegiv/olanding/internal/store"
)

// MinPasswordLength is the shortest accepted new password.
const MinPasswordLength = 8

// ChangePasswordInput is the change-password form.
type ChangePasswordInput struct {
	Current string `form:"current_password" validate:"required"`
	New     string `form:"new_password" validate:"required,min=8,max=128"`
	Confirm string `form:"confirm_password" validate:"required"`
}

// AuthService verifies and maintains the admin credential.
type AuthService struct {
	queries *store.Queries
	logger  *slog.Logger
	now     func() time.Time
	verify  func(password, encodedHash string) (bool, error)
}

// NewAuthService creates an AuthService.
func NewAuthService(d Deps) *AuthService {
	b := newEntityBase(d)
	return &AuthService{queries: b.queries, logger: b.logger, now: b.now, verify: auth.CheckPassword}
}

// Login checks a username and password. Unknown users and wrong passwords
// both yield auth.ErrInvalidCredentials. On success last_login_at is
// updated and an outdated hash is upgraded.
func (s *AuthService) Login(ctx context.Context, username, password string) (store.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return store.AdminUser{}, auth.ErrInvalidCredentials
	}

	user, err := s.queries.GetAdminUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		_, _ = s.verify(password, auth.DummyHash())
		s.logger.Debug("login attempt for unknown user", "username", username)
		return store.AdminUser{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return store.AdminUser{}, fmt.Errorf("loading admin user: %w", err)
	}

	ok, err := s.verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash is unreadable", "user_id", user.ID, "error", err)
		return store.AdminUser{}, auth.ErrInvalidCredentials
	}
	if !ok {
		s.logger.Info("login failed: wrong password", "username", username)
		return store.AdminUser{}, auth.ErrInvalidCredentials
	}

	now := s.now()
	user.LastLoginAt = sql.NullTime{Time: now, Valid: true}
	if err := s.queries.UpdateAdminUserLastLogin(ctx, store.UpdateAdminUserLastLoginParams{
		LastLoginAt: user.LastLoginAt,
		ID:          user.ID,
	}); err != nil {
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if err := s.setPassword(ctx, user.ID, password); err != nil {
			s.logger.Warn("failed to upgrade password hash", "user_id", user.ID, "error", err)
		} else {
			s.logger.Info("password hash upgraded", "user_id", user.ID)
		}
	}

	s.logger.Info("admin logged in", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// User returns the admin with the given id.
func (s *AuthService) User(ctx context.Context, id int64) (store.AdminUser, error) {
	user, err := s.queries.GetAdminUserByID(ctx, id)
	if err != nil {
		return user, notFound(err, "admin user")
	}
	return user, nil
}

// ChangePassword replaces the password of userID after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, in ChangePasswordInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.New != in.Confirm {
		return invalid("confirm_password", "New passwords do not match")
	}

	user, err := s.User(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := s.verify(in.Current, user.PasswordHash)
	if err != nil || !ok {
		return invalid("current_password", "Current password is incorrect")
	}

	if err := s.setPassword(ctx, userID, in.New); err != nil {
		return err
	}
	s.logger.Info("admin password changed", "user_id", userID)
	return nil
}

// ResetPassword sets the password of username, creating the account when
// it does not exist. It backs the passwd command.
func (s *AuthService) ResetPassword(ctx context.Context, username, password string) (created bool, err error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, invalid("username", "Username is required")
	}
	if len(password) < MinPasswordLength {
		return false, invalid("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	user, err := s.queries.GetAdminUserByUsername(ctx, username)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		hash, err := auth.HashPassword(password)
		if err != nil {
			return false, fmt.Errorf("hashing password: %w", err)
		}
		if _, err := s.queries.CreateAdminUser(ctx, store.CreateAdminUserParams{
			Username:     username,
			PasswordHash: hash,
			CreatedAt:    s.now(),
		}); err != nil {
			return false, fmt.Errorf("creating admin user: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("loading admin user: %w", err)
	}

	return false, s.setPassword(ctx, user.ID, password)
}

func (s *AuthService) setPassword(ctx context.Context, userID int64, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.queries.UpdateAdminUserPassword(ctx, store.UpdateAdminUserPasswordParams{
		PasswordHash: hash,
		ID:           userID,
	}); err != nil {
		return notFound(err, "updating password")
	}
	return nil
}
