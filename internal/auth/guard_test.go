// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGuard_Check(t *testing.T) {
	loginAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	valid := Session{
		Authenticated: true,
		Username:      "admin",
		UserID:        1,
		LoginAt:       loginAt,
		Fingerprint:   "Chrome|Windows|desktop",
	}

	tests := []struct {
		name        string
		session     Session
		now         time.Time
		fingerprint string
		want        error
	}{
		{"fresh login", valid, loginAt.Add(time.Second), "Chrome|Windows|desktop", nil},
		{"exactly at lifetime", valid, loginAt.Add(2 * time.Hour), "Chrome|Windows|desktop", nil},
		{"lifetime plus one second", valid, loginAt.Add(2*time.Hour + time.Second), "Chrome|Windows|desktop", ErrSessionExpired},
		{"anonymous", Session{}, loginAt, "", ErrUnauthenticated},
		{"flag without user", Session{Authenticated: true, LoginAt: loginAt}, loginAt, "", ErrUnauthenticated},
		{"no login time", Session{Authenticated: true, UserID: 1}, loginAt, "", ErrUnauthenticated},
		{"fingerprint mismatch", valid, loginAt.Add(time.Minute), "Firefox|Linux|desktop", ErrUnauthenticated},
		{"no stored fingerprint", Session{Authenticated: true, UserID: 1, LoginAt: loginAt}, loginAt, "anything", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Guard{Lifetime: SessionLifetime, Now: func() time.Time { return tt.now }}
			err := g.Check(tt.session, tt.fingerprint)
			if !errors.Is(err, tt.want) {
				t.Errorf("Check() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGuard_StateOf(t *testing.T) {
	loginAt := time.Now()
	s := Session{Authenticated: true, UserID: 7, LoginAt: loginAt}
	g := Guard{Lifetime: time.Hour, Now: func() time.Time { return loginAt.Add(61 * time.Minute) }}

	if got := g.StateOf(s, ""); got != StateExpired {
		t.Errorf("StateOf() = %v, want %v", got, StateExpired)
	}
	if got := g.StateOf(Session{}, ""); got != StateAnonymous {
		t.Errorf("StateOf() = %v, want %v", got, StateAnonymous)
	}
}

func TestGuard_Defaults(t *testing.T) {
	g := Guard{}
	s := Session{Authenticated: true, UserID: 1, LoginAt: time.Now().Add(-time.Hour)}
	if err := g.Check(s, ""); err != nil {
		t.Errorf("zero Guard should use default lifetime, got %v", err)
	}

	want := s.LoginAt.Add(SessionLifetime)
	if got := NewGuard().ExpiresAt(s); !got.Equal(want) {
		t.Errorf("ExpiresAt() = %v, want %v", got, want)
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateAnonymous:     "anonymous",
		StateAuthenticated: "authenticated",
		StateExpired:       "expired",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
