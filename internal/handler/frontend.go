// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/olanding/internal/render"
	"github.com/olegiv/olanding/internal/service"
)

// FrontendHandler serves the public landing page and contact form.
type FrontendHandler struct {
	base
	landing *service.LandingService
	inbox   *service.Inbox
}

// Home renders the landing page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, r, render.TemplateData{})
}

// Contact stores a contact form submission.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, formOverheadBytes)
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, redirectContact, "Invalid form data")
		return
	}

	var in service.ContactInput
	if err := decodeForm(r.PostForm, &in); err != nil {
		h.flashError(w, r, redirectContact, "Invalid form data")
		return
	}

	id, err := h.inbox.Submit(r.Context(), in)
	if errs := validationErrors(err); errs != nil {
		h.renderHome(w, r, render.TemplateData{Form: in, Errors: errs})
		return
	}
	if err != nil {
		h.logger.Error("failed to store contact message", "error", err)
		h.flashError(w, r, redirectContact, "Your message could not be sent. Please try again later.")
		return
	}

	h.logger.Info("contact message received", "id", id)
	h.flashSuccess(w, r, redirectContact, "Your message has been sent successfully! We will get back to you soon.")
}

func (h *FrontendHandler) renderHome(w http.ResponseWriter, r *http.Request, data render.TemplateData) {
	page, err := h.landing.Load(r.Context())
	if err != nil {
		h.logAndInternalError(w, r, "failed to load landing page", "error", err)
		return
	}
	data.Data = page
	h.renderPage(w, r, "public/index", data)
}
