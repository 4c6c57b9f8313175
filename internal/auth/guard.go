// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"time"
)

// SessionLifetime is the absolute lifetime of an admin login.
const SessionLifetime = 2 * time.Hour

var (
	// ErrUnauthenticated is returned when no valid login is present.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrSessionExpired is returned when the login is older than the lifetime.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidCredentials is the single outcome for every failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Session is the authentication state carried by a client session.
type Session struct {
	Authenticated bool
	Username      string
	UserID        int64
	LoginAt       time.Time
	Fingerprint   string
}

// State is the guard's view of a session.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	default:
		return "anonymous"
	}
}

// Guard decides whether a session may perform privileged operations.
type Guard struct {
	Lifetime time.Duration
	Now      func() time.Time
}

// NewGuard returns a Guard using SessionLifetime and the wall clock.
func NewGuard() Guard {
	return Guard{Lifetime: SessionLifetime, Now: time.Now}
}

func (g Guard) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g Guard) lifetime() time.Duration {
	if g.Lifetime <= 0 {
		return SessionLifetime
	}
	return g.Lifetime
}

// StateOf classifies s. A fingerprint mismatch counts as anonymous.
func (g Guard) StateOf(s Session, fingerprint string) State {
	if !s.Authenticated || s.UserID == 0 || s.LoginAt.IsZero() {
		return StateAnonymous
	}
	if s.Fingerprint != "" && s.Fingerprint != fingerprint {
		return StateAnonymous
	}
	if g.now().Sub(s.LoginAt) > g.lifetime() {
		return StateExpired
	}
	return StateAuthenticated
}

// Check returns nil only for an authenticated, unexpired session.
func (g Guard) Check(s Session, fingerprint string) error {
	switch g.StateOf(s, fingerprint) {
	case StateAuthenticated:
		return nil
	case StateExpired:
		return ErrSessionExpired
	default:
		return ErrUnauthenticated
	}
}

// ExpiresAt returns when s stops being valid.
func (g Guard) ExpiresAt(s Session) time.Time {
	return s.LoginAt.Add(g.lifetime())
}
