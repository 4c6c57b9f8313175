// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/olanding/internal/auth"
	"github.com/olegiv/olanding/internal/store"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return NewManager(New(db.DB, true))
}

// withSession runs fn inside a loaded session context.
func withSession(t *testing.T, m *Manager, fn func(ctx context.Context)) {
	t.Helper()
	ctx, err := m.SessionManager().Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	fn(ctx)
}

func TestNew_DevMode(t *testing.T) {
	m := setupManager(t)
	sm := m.SessionManager()

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", sm.Cookie.SameSite)
	}
	if sm.Lifetime != auth.SessionLifetime {
		t.Errorf("Lifetime = %v, want %v", sm.Lifetime, auth.SessionLifetime)
	}
}

func TestManager_EstablishAndLoad(t *testing.T) {
	m := setupManager(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	withSession(t, m, func(ctx context.Context) {
		if got := m.Load(ctx); got.Authenticated {
			t.Fatal("fresh session should be anonymous")
		}

		if err := m.Establish(ctx, 42, "admin", "Chrome|Linux|desktop", now); err != nil {
			t.Fatalf("Establish: %v", err)
		}

		s := m.Load(ctx)
		if !s.Authenticated || s.UserID != 42 || s.Username != "admin" {
			t.Errorf("unexpected session: %+v", s)
		}
		if !s.LoginAt.Equal(now) {
			t.Errorf("LoginAt = %v, want %v", s.LoginAt, now)
		}
		if s.Fingerprint != "Chrome|Linux|desktop" {
			t.Errorf("Fingerprint = %q", s.Fingerprint)
		}

		m.ClearAuth(ctx)
		if got := m.Load(ctx); got.Authenticated || got.UserID != 0 || !got.LoginAt.IsZero() {
			t.Errorf("ClearAuth left state behind: %+v", got)
		}
	})
}

func TestManager_LoginTimeKeepsSubSecondPrecision(t *testing.T) {
	m := setupManager(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, int(750*time.Millisecond), time.UTC)

	withSession(t, m, func(ctx context.Context) {
		if err := m.Establish(ctx, 1, "admin", "fp", now); err != nil {
			t.Fatalf("Establish: %v", err)
		}

		s := m.Load(ctx)
		if !s.LoginAt.Equal(now) {
			t.Fatalf("LoginAt = %v, want %v", s.LoginAt, now)
		}

		guard := auth.Guard{
			Lifetime: auth.SessionLifetime,
			Now:      func() time.Time { return now.Add(auth.SessionLifetime - 500*time.Millisecond) },
		}
		if err := guard.Check(s, "fp"); err != nil {
			t.Errorf("session expired early: %v", err)
		}
	})
}

func TestManager_Flash(t *testing.T) {
	m := setupManager(t)

	withSession(t, m, func(ctx context.Context) {
		m.SetFlash(ctx, "Saved", "success")

		msg, typ := m.PopFlash(ctx)
		if msg != "Saved" || typ != "success" {
			t.Errorf("PopFlash() = %q, %q", msg, typ)
		}

		msg, typ = m.PopFlash(ctx)
		if msg != "" || typ != "" {
			t.Errorf("second PopFlash() = %q, %q, want empty", msg, typ)
		}
	})
}

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"empty", "", "unknown"},
		{
			"desktop chrome",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Chrome|Windows|desktop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("User-Agent", tt.ua)
			if got := Fingerprint(r); got != tt.want {
				t.Errorf("Fingerprint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFingerprint_Mobile(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36")
	if got := Fingerprint(r); !strings.HasSuffix(got, "|mobile") {
		t.Errorf("Fingerprint() = %q, want mobile device class", got)
	}
}

func TestFingerprint_IgnoresVersion(t *testing.T) {
	a := httptest.NewRequest(http.MethodGet, "/", nil)
	a.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36")
	b := httptest.NewRequest(http.MethodGet, "/", nil)
	b.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36")

	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("fingerprint changed across versions: %q vs %q", Fingerprint(a), Fingerprint(b))
	}
}
