// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/olanding/internal/auth"
	"github.com/olegiv/olanding/internal/middleware"
	"github.com/olegiv/olanding/internal/render"
	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/session"
)

// AuthHandler handles login, logout and password changes.
type AuthHandler struct {
	base
	svc   *service.AuthService
	now   func() time.Time
}

// LoginForm renders the login page. An already logged-in admin goes
// straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.guard.Check(h.sessions.Load(r.Context()), session.Fingerprint(r)) == nil {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, "auth/login", render.TemplateData{Title: "Admin login"})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, redirectLogin, "Invalid form data")
		return
	}

	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	user, err := h.svc.Login(r.Context(), username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.logger.Info("login rejected", "username", username, "remote_addr", r.RemoteAddr,
			"request_id", middleware.GetRequestID(r.Context()))
		h.renderPage(w, r, "auth/login", render.TemplateData{
			Title:     "Admin login",
			Form:      username,
			Flash:     "Invalid credentials",
			FlashType: flashTypeError,
		})
		return
	}
	if err != nil {
		h.logAndInternalError(w, r, "login failed", "error", err)
		return
	}

	// Establish renews the token to prevent session fixation.
	if err := h.sessions.Establish(r.Context(), user.ID, user.Username, session.Fingerprint(r), h.now()); err != nil {
		h.logAndInternalError(w, r, "session renewal error", "error", err)
		return
	}

	h.flashSuccess(w, r, redirectAdmin, "Login successful")
}

// Logout destroys the session. A fresh session carries the flash message.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessions.Load(r.Context()).UserID

	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.logger.Error("session destroy error", "error", err)
	}
	if userID > 0 {
		h.logger.Info("admin logged out", "user_id", userID)
	}

	h.flashAndRedirect(w, r, redirectLogin, "Logged out successfully", flashTypeInfo)
}

// ChangePasswordForm renders the password change page.
func (h *AuthHandler) ChangePasswordForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "admin/change_password", render.TemplateData{
		Title: "Change password",
		Nav:   "password",
	})
}

// ChangePassword verifies the current password and stores the new one.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetAdmin(r)
	if !ok {
		http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, redirectChangePwd, "Invalid form data")
		return
	}

	var in service.ChangePasswordInput
	if err := decodeForm(r.PostForm, &in); err != nil {
		h.flashError(w, r, redirectChangePwd, "Invalid form data")
		return
	}

	err := h.svc.ChangePassword(r.Context(), admin.UserID, in)
	if errs := validationErrors(err); errs != nil {
		h.renderPage(w, r, "admin/change_password", render.TemplateData{
			Title:  "Change password",
			Nav:    "password",
			Errors: errs,
		})
		return
	}
	if err != nil {
		h.logAndInternalError(w, r, "failed to change password", "user_id", admin.UserID, "error", err)
		return
	}

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		h.logger.Warn("session renewal after password change failed", "error", err)
	}
	h.flashSuccess(w, r, redirectAdmin, "Password changed successfully")
}
