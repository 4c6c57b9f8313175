// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"

	"github.com/olegiv/olanding/internal/render"
	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/store"
)

// AdminHandler serves the dashboard and the hero, about and footer editors.
type AdminHandler struct {
	base
	dashboard *service.Dashboard
	sections  *service.SectionService
	maxUpload int64
}

// Dashboard renders the admin dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		h.logAndInternalError(w, r, "failed to load dashboard", "error", err)
		return
	}
	h.renderPage(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Nav:   "dashboard",
		Data:  stats,
	})
}

// sectionPage binds the generic section editor to one section.
type sectionPage[R, I any] struct {
	title    string
	nav      string
	path     string
	template string
	load     func(ctx context.Context) (R, bool, error)
	save     func(ctx context.Context, in I, upload *service.FileUpload) (R, error)
	input    func(R) I
}

func showSection[R, I any](h *AdminHandler, w http.ResponseWriter, r *http.Request, p sectionPage[R, I]) {
	row, _, err := p.load(r.Context())
	if err != nil {
		h.logAndInternalError(w, r, "failed to load section", "section", p.nav, "error", err)
		return
	}
	h.renderPage(w, r, p.template, render.TemplateData{
		Title: p.title,
		Nav:   p.nav,
		Data:  row,
		Form:  p.input(row),
	})
}

func saveSection[R, I any](h *AdminHandler, w http.ResponseWriter, r *http.Request, p sectionPage[R, I]) {
	if err := parseForm(w, r, h.maxUpload); err != nil {
		h.flashError(w, r, p.path, "Invalid form data or upload too large")
		return
	}

	var in I
	if err := decodeForm(r.PostForm, &in); err != nil {
		h.flashError(w, r, p.path, "Invalid form data")
		return
	}

	var files openFiles
	defer files.Close()

	upload, err := formFile(r, "image", &files)
	if err != nil {
		h.logAndInternalError(w, r, "failed to open upload", "section", p.nav, "error", err)
		return
	}

	_, err = p.save(r.Context(), in, upload)
	if errs := validationErrors(err); errs != nil {
		row, _, loadErr := p.load(r.Context())
		if loadErr != nil {
			h.logAndInternalError(w, r, "failed to load section", "section", p.nav, "error", loadErr)
			return
		}
		h.renderPage(w, r, p.template, render.TemplateData{
			Title:  p.title,
			Nav:    p.nav,
			Data:   row,
			Form:   in,
			Errors: errs,
		})
		return
	}
	if err != nil {
		h.logger.Error("failed to save section", "section", p.nav, "error", err)
		h.flashError(w, r, p.path, "Error saving "+p.title)
		return
	}

	h.flashSuccess(w, r, p.path, p.title+" updated successfully")
}

func (h *AdminHandler) heroPage() sectionPage[store.HeroSection, service.HeroInput] {
	return sectionPage[store.HeroSection, service.HeroInput]{
		title:    "Hero section",
		nav:      "hero",
		path:     RouteAdmin + RouteHero,
		template: "admin/hero",
		load:     h.sections.Hero,
		save:     h.sections.UpsertHero,
		input: func(s store.HeroSection) service.HeroInput {
			return service.HeroInput{
				Title:      s.Title,
				Subtitle:   s.Subtitle,
				ButtonText: s.ButtonText,
				ButtonLink: s.ButtonLink,
			}
		},
	}
}

func (h *AdminHandler) aboutPage() sectionPage[store.AboutSection, service.AboutInput] {
	return sectionPage[store.AboutSection, service.AboutInput]{
		title:    "About section",
		nav:      "about",
		path:     RouteAdmin + RouteAbout,
		template: "admin/about",
		load:     h.sections.About,
		save:     h.sections.UpsertAbout,
		input: func(s store.AboutSection) service.AboutInput {
			return service.AboutInput{Title: s.Title, Content: s.Content}
		},
	}
}

func (h *AdminHandler) footerPage() sectionPage[store.FooterSection, service.FooterInput] {
	return sectionPage[store.FooterSection, service.FooterInput]{
		title:    "Footer",
		nav:      "footer",
		path:     RouteAdmin + RouteFooter,
		template: "admin/footer",
		load:     h.sections.Footer,
		save:     h.sections.UpsertFooter,
		input: func(s store.FooterSection) service.FooterInput {
			return service.FooterInput{
				Description:   s.Description,
				Address:       s.Address,
				Phone:         s.Phone,
				Email:         s.Email,
				FacebookURL:   s.FacebookURL,
				InstagramURL:  s.InstagramURL,
				CopyrightText: s.CopyrightText,
			}
		},
	}
}

// Hero renders the hero editor.
func (h *AdminHandler) Hero(w http.ResponseWriter, r *http.Request) {
	showSection(h, w, r, h.heroPage())
}

// SaveHero upserts the hero section.
func (h *AdminHandler) SaveHero(w http.ResponseWriter, r *http.Request) {
	saveSection(h, w, r, h.heroPage())
}

// About renders the about editor.
func (h *AdminHandler) About(w http.ResponseWriter, r *http.Request) {
	showSection(h, w, r, h.aboutPage())
}

// SaveAbout upserts the about section.
func (h *AdminHandler) SaveAbout(w http.ResponseWriter, r *http.Request) {
	saveSection(h, w, r, h.aboutPage())
}

// Footer renders the footer editor.
func (h *AdminHandler) Footer(w http.ResponseWriter, r *http.Request) {
	showSection(h, w, r, h.footerPage())
}

// SaveFooter upserts the footer.
func (h *AdminHandler) SaveFooter(w http.ResponseWriter, r *http.Request) {
	saveSection(h, w, r, h.footerPage())
}
