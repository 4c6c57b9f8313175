// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/olanding/internal/auth"
	"github.com/olegiv/olanding/internal/middleware"
	"github.com/olegiv/olanding/internal/render"
	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/session"
)

// base is embedded by every handler.
type base struct {
	renderer *render.Renderer
	sessions *session.Manager
	guard    auth.Guard
	logger   *slog.Logger
}

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) so POST results are fetched with GET.
func (b *base) flashAndRedirect(w http.ResponseWriter, r *http.Request, url, message, messageType string) {
	b.sessions.SetFlash(r.Context(), message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func (b *base) flashError(w http.ResponseWriter, r *http.Request, url, message string) {
	b.flashAndRedirect(w, r, url, message, flashTypeError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func (b *base) flashSuccess(w http.ResponseWriter, r *http.Request, url, message string) {
	b.flashAndRedirect(w, r, url, message, flashTypeSuccess)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func (b *base) logAndInternalError(w http.ResponseWriter, r *http.Request, logMsg string, args ...any) {
	args = append(args, "request_id", middleware.GetRequestID(r.Context()))
	b.logger.Error(logMsg, args...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// renderPage renders a page and turns template failures into a 500.
func (b *base) renderPage(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData) {
	if admin, ok := middleware.GetAdmin(r); ok {
		data.Admin = admin.Username
		data.SessionExpires = b.guard.ExpiresAt(admin)
	}
	if err := b.renderer.Render(w, r, name, data); err != nil {
		b.logAndInternalError(w, r, "failed to render template", "template", name, "error", err)
	}
}

// validationErrors converts a *service.ValidationError into the per-field
// map used by the templates. It returns nil for other errors.
func validationErrors(err error) map[string]string {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	field := verr.Field
	if field == "" {
		field = "_form"
	}
	return map[string]string{field: verr.Message}
}

// parseID reads the {id} route parameter.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// requireID parses {id} or redirects to listURL with an error flash.
func (b *base) requireID(w http.ResponseWriter, r *http.Request, listURL, entityName string) (int64, bool) {
	id, ok := parseID(r)
	if !ok {
		b.flashError(w, r, listURL, entityName+" not found")
	}
	return id, ok
}

// handleLookupError redirects to listURL for missing records and reports
// other errors as a 500. It returns true when err was handled.
func (b *base) handleLookupError(w http.ResponseWriter, r *http.Request, err error, listURL, entityName string, id int64) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, service.ErrNotFound) {
		b.flashError(w, r, listURL, entityName+" not found")
		return true
	}
	b.logger.Error("failed to load "+entityName, "error", err, "id", id,
		"request_id", middleware.GetRequestID(r.Context()))
	b.flashError(w, r, listURL, "Error loading "+entityName)
	return true
}
