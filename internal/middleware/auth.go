// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for admin authentication,
// request identification, logging, metrics and response hardening.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/olanding/internal/auth"
	"github.com/olegiv/olanding/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyAdmin     ContextKey = "admin"
	ContextKeyRequestID ContextKey = "request_id"
)

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// Flash messages shown on the login page after a guard rejection.
const (
	FlashLoginRequired  = "Please log in"
	FlashSessionExpired = "Your session has expired"
)

// RequireAdmin admits only requests carrying a live admin login. Expired
// logins are cleared; every rejection redirects to the login page with a
// flash message.
func RequireAdmin(sessions *session.Manager, guard auth.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sess := sessions.Load(ctx)

			err := guard.Check(sess, session.Fingerprint(r))
			switch {
			case err == nil:
				ctx = context.WithValue(ctx, ContextKeyAdmin, sess)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			case errors.Is(err, auth.ErrSessionExpired):
				slog.Info("admin session expired", "user_id", sess.UserID, "path", r.URL.Path)
				sessions.ClearAuth(ctx)
				sessions.SetFlash(ctx, FlashSessionExpired, "warning")
			default:
				if sess.Authenticated {
					slog.Warn("admin session rejected", "user_id", sess.UserID, "path", r.URL.Path, "error", err)
					sessions.ClearAuth(ctx)
				}
				sessions.SetFlash(ctx, FlashLoginRequired, "info")
			}
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		})
	}
}

// GetAdmin returns the admin session attached by RequireAdmin.
func GetAdmin(r *http.Request) (auth.Session, bool) {
	sess, ok := r.Context().Value(ContextKeyAdmin).(auth.Session)
	return sess, ok
}
