// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session stores the admin login state in server-side sessions.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/mileusna/useragent"

	"github.com/olegiv/olanding/internal/auth"
)

// Session keys for the login state.
const (
	KeyAuthenticated = "admin_logged_in"
	KeyUsername      = "admin_username"
	KeyUserID        = "admin_user_id"
	KeyLoginAt       = "admin_login_at"
	KeyFingerprint   = "admin_fingerprint"
)

// Flash message keys.
const (
	KeyFlash     = "flash"
	KeyFlashType = "flash_type"
)

// New creates a session manager backed by the sessions table in db.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = auth.SessionLifetime
	sm.Cookie.Name = "olanding_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}

// Manager reads and writes auth.Session values on top of scs.
type Manager struct {
	sm *scs.SessionManager
}

// NewManager wraps sm.
func NewManager(sm *scs.SessionManager) *Manager {
	return &Manager{sm: sm}
}

// SessionManager returns the underlying scs manager (for LoadAndSave).
func (m *Manager) SessionManager() *scs.SessionManager {
	return m.sm
}

// Load returns the auth state stored in the request's session.
func (m *Manager) Load(ctx context.Context) auth.Session {
	s := auth.Session{
		Authenticated: m.sm.GetBool(ctx, KeyAuthenticated),
		Username:      m.sm.GetString(ctx, KeyUsername),
		UserID:        m.sm.GetInt64(ctx, KeyUserID),
		Fingerprint:   m.sm.GetString(ctx, KeyFingerprint),
	}
	if ts := m.sm.GetInt64(ctx, KeyLoginAt); ts > 0 {
		s.LoginAt = time.UnixMilli(ts)
	}
	return s
}

// Establish renews the session token and stores a fresh login.
func (m *Manager) Establish(ctx context.Context, userID int64, username, fingerprint string, now time.Time) error {
	if err := m.sm.RenewToken(ctx); err != nil {
		return err
	}
	m.sm.Put(ctx, KeyAuthenticated, true)
	m.sm.Put(ctx, KeyUsername, username)
	m.sm.Put(ctx, KeyUserID, userID)
	m.sm.Put(ctx, KeyLoginAt, now.UnixMilli())
	m.sm.Put(ctx, KeyFingerprint, fingerprint)
	return nil
}

// ClearAuth removes the login state but keeps the session itself,
// so a flash message can still be delivered.
func (m *Manager) ClearAuth(ctx context.Context) {
	for _, key := range []string{KeyAuthenticated, KeyUsername, KeyUserID, KeyLoginAt, KeyFingerprint} {
		m.sm.Remove(ctx, key)
	}
}

// Destroy deletes all session state.
func (m *Manager) Destroy(ctx context.Context) error {
	return m.sm.Destroy(ctx)
}

// RenewToken rotates the session token, keeping its data.
func (m *Manager) RenewToken(ctx context.Context) error {
	return m.sm.RenewToken(ctx)
}

// SetFlash stores a one-shot message for the next rendered page.
func (m *Manager) SetFlash(ctx context.Context, message, flashType string) {
	m.sm.Put(ctx, KeyFlash, message)
	m.sm.Put(ctx, KeyFlashType, flashType)
}

// PopFlash returns and clears the pending flash message.
func (m *Manager) PopFlash(ctx context.Context) (message, flashType string) {
	message = m.sm.PopString(ctx, KeyFlash)
	flashType = m.sm.PopString(ctx, KeyFlashType)
	if message != "" && flashType == "" {
		flashType = "info"
	}
	return message, flashType
}

// Fingerprint derives a coarse client fingerprint from the User-Agent:
// browser name, operating system and device class. Version numbers are
// ignored so browser updates do not log the admin out.
func Fingerprint(r *http.Request) string {
	raw := r.UserAgent()
	if raw == "" {
		return "unknown"
	}
	ua := useragent.Parse(raw)

	device := "desktop"
	switch {
	case ua.Bot:
		device = "bot"
	case ua.Tablet:
		device = "tablet"
	case ua.Mobile:
		device = "mobile"
	}

	name := ua.Name
	if name == "" {
		name = "unknown"
	}
	os := ua.OS
	if os == "" {
		os = "unknown"
	}
	return strings.Join([]string{name, os, device}, "|")
}
