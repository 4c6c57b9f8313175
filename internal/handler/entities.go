// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/olegiv/olanding/internal/middleware"
	"github.com/olegiv/olanding/internal/render"
	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/store"
)

// entityPage is the Data of a list-entity form page.
type entityPage[E any] struct {
	Action string
	IsNew  bool
	Entity E
}

// crudOps binds CRUDHandler to one list entity.
type crudOps[E, I any] struct {
	path         string // e.g. /admin/schools
	name         string // e.g. School
	plural       string // e.g. Schools
	nav          string
	listTemplate string
	formTemplate string

	list   func(ctx context.Context) ([]E, error)
	get    func(ctx context.Context, id int64) (E, error)
	create func(ctx context.Context, in I, r *http.Request, files *openFiles) (int64, error)
	update func(ctx context.Context, id int64, in I, r *http.Request, files *openFiles) error
	remove func(ctx context.Context, id int64) error
	toggle func(ctx context.Context, id int64) (bool, error)

	blank func() I  // defaults for the "new" form
	input func(E) I // edit form prefilled from the record
}

// CRUDHandler serves list, create, edit, delete and toggle pages for a
// list entity.
type CRUDHandler[E, I any] struct {
	base
	ops       crudOps[E, I]
	maxUpload int64
}

// List renders all records, newest first.
func (h *CRUDHandler[E, I]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ops.list(r.Context())
	if err != nil {
		h.logAndInternalError(w, r, "failed to list "+h.ops.plural, "error", err)
		return
	}
	h.renderPage(w, r, h.ops.listTemplate, render.TemplateData{
		Title: h.ops.plural,
		Nav:   h.ops.nav,
		Data:  items,
	})
}

// NewForm renders the empty form.
func (h *CRUDHandler[E, I]) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, h.ops.blank(), entityPage[E]{Action: h.ops.path + RouteSuffixNew, IsNew: true}, nil)
}

// Create handles the new form submission.
func (h *CRUDHandler[E, I]) Create(w http.ResponseWriter, r *http.Request) {
	newURL := h.ops.path + RouteSuffixNew
	if err := parseForm(w, r, h.maxUpload); err != nil {
		h.flashError(w, r, newURL, "Invalid form data or upload too large")
		return
	}

	var in I
	if err := decodeForm(r.PostForm, &in); err != nil {
		h.flashError(w, r, newURL, "Invalid form data")
		return
	}

	var files openFiles
	defer files.Close()

	id, err := h.ops.create(r.Context(), in, r, &files)
	if errs := validationErrors(err); errs != nil {
		h.renderForm(w, r, in, entityPage[E]{Action: newURL, IsNew: true}, errs)
		return
	}
	if err != nil {
		h.logger.Error("failed to create "+h.ops.name, "error", err,
			"request_id", middleware.GetRequestID(r.Context()))
		h.flashError(w, r, h.ops.path, "Error creating "+h.ops.name)
		return
	}

	h.logger.Info(h.ops.name+" created", "id", id)
	h.flashSuccess(w, r, h.ops.path, h.ops.name+" created successfully")
}

// EditForm renders the form for an existing record.
func (h *CRUDHandler[E, I]) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r, h.ops.path, h.ops.name)
	if !ok {
		return
	}
	entity, err := h.ops.get(r.Context(), id)
	if h.handleLookupError(w, r, err, h.ops.path, h.ops.name, id) {
		return
	}
	h.renderForm(w, r, h.ops.input(entity), entityPage[E]{Action: h.editURL(id), Entity: entity}, nil)
}

// Update handles the edit form submission.
func (h *CRUDHandler[E, I]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r, h.ops.path, h.ops.name)
	if !ok {
		return
	}
	entity, err := h.ops.get(r.Context(), id)
	if h.handleLookupError(w, r, err, h.ops.path, h.ops.name, id) {
		return
	}

	if err := parseForm(w, r, h.maxUpload); err != nil {
		h.flashError(w, r, h.editURL(id), "Invalid form data or upload too large")
		return
	}

	var in I
	if err := decodeForm(r.PostForm, &in); err != nil {
		h.flashError(w, r, h.editURL(id), "Invalid form data")
		return
	}

	var files openFiles
	defer files.Close()

	err = h.ops.update(r.Context(), id, in, r, &files)
	if errs := validationErrors(err); errs != nil {
		h.renderForm(w, r, in, entityPage[E]{Action: h.editURL(id), Entity: entity}, errs)
		return
	}
	if h.handleLookupError(w, r, err, h.ops.path, h.ops.name, id) {
		return
	}

	h.flashSuccess(w, r, h.ops.path, h.ops.name+" updated successfully")
}

// Delete removes a record and its files.
func (h *CRUDHandler[E, I]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r, h.ops.path, h.ops.name)
	if !ok {
		return
	}
	if h.handleLookupError(w, r, h.ops.remove(r.Context(), id), h.ops.path, h.ops.name, id) {
		return
	}
	h.flashSuccess(w, r, h.ops.path, h.ops.name+" deleted successfully")
}

// Toggle flips the active flag. Script clients get JSON, forms a redirect.
func (h *CRUDHandler[E, I]) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		if wantsJSON(r) {
			writeJSONError(w, http.StatusNotFound, h.ops.name+" not found")
			return
		}
		h.flashError(w, r, h.ops.path, h.ops.name+" not found")
		return
	}

	active, err := h.ops.toggle(r.Context(), id)
	if wantsJSON(r) {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeJSONError(w, http.StatusNotFound, h.ops.name+" not found")
		case err != nil:
			h.logger.Error("failed to toggle "+h.ops.name, "error", err, "id", id)
			writeJSONError(w, http.StatusInternalServerError, "Error updating status")
		default:
			writeJSONSuccess(w, map[string]any{"id": id, "is_active": active})
		}
		return
	}

	if h.handleLookupError(w, r, err, h.ops.path, h.ops.name, id) {
		return
	}
	state := "deactivated"
	if active {
		state = "activated"
	}
	h.flashSuccess(w, r, h.ops.path, fmt.Sprintf("%s %s", h.ops.name, state))
}

func (h *CRUDHandler[E, I]) editURL(id int64) string {
	return fmt.Sprintf("%s/edit/%d", h.ops.path, id)
}

func (h *CRUDHandler[E, I]) renderForm(w http.ResponseWriter, r *http.Request, in I, page entityPage[E], errs map[string]string) {
	title := "Edit " + h.ops.name
	if page.IsNew {
		title = "New " + h.ops.name
	}
	h.renderPage(w, r, h.ops.formTemplate, render.TemplateData{
		Title:  title,
		Nav:    h.ops.nav,
		Data:   page,
		Form:   in,
		Errors: errs,
	})
}

// newSchoolsHandler wires CRUDHandler to the school service.
func newSchoolsHandler(b base, svc *service.SchoolService, maxUpload int64) *CRUDHandler[store.School, service.SchoolInput] {
	return &CRUDHandler[store.School, service.SchoolInput]{
		base:      b,
		maxUpload: maxUpload,
		ops: crudOps[store.School, service.SchoolInput]{
			path:         RouteAdmin + RouteSchools,
			name:         "School",
			plural:       "Schools",
			nav:          "schools",
			listTemplate: "admin/schools",
			formTemplate: "admin/school_form",
			list:         svc.List,
			get:          svc.Get,
			create: func(ctx context.Context, in service.SchoolInput, r *http.Request, files *openFiles) (int64, error) {
				logo, err := formFile(r, "logo", files)
				if err != nil {
					return 0, err
				}
				return svc.Create(ctx, in, logo)
			},
			update: func(ctx context.Context, id int64, in service.SchoolInput, r *http.Request, files *openFiles) error {
				logo, err := formFile(r, "logo", files)
				if err != nil {
					return err
				}
				return svc.Update(ctx, id, in, logo)
			},
			remove: svc.Delete,
			toggle: svc.ToggleActive,
			blank:  func() service.SchoolInput { return service.SchoolInput{IsActive: true} },
			input: func(s store.School) service.SchoolInput {
				return service.SchoolInput{
					Name:        s.Name,
					Description: s.Description,
					Address:     s.Address,
					WebsiteURL:  s.WebsiteURL,
					IsActive:    s.IsActive,
				}
			},
		},
	}
}

// newEventsHandler wires CRUDHandler to the event service.
func newEventsHandler(b base, svc *service.EventService, maxUpload int64) *CRUDHandler[service.EventView, service.EventInput] {
	return &CRUDHandler[service.EventView, service.EventInput]{
		base:      b,
		maxUpload: maxUpload,
		ops: crudOps[service.EventView, service.EventInput]{
			path:         RouteAdmin + RouteEvents,
			name:         "Event",
			plural:       "Events",
			nav:          "events",
			listTemplate: "admin/events",
			formTemplate: "admin/event_form",
			list:         svc.List,
			get:          svc.Get,
			create: func(ctx context.Context, in service.EventInput, r *http.Request, files *openFiles) (int64, error) {
				images, err := formFiles(r, "images", files)
				if err != nil {
					return 0, err
				}
				return svc.Create(ctx, in, images)
			},
			update: func(ctx context.Context, id int64, in service.EventInput, r *http.Request, files *openFiles) error {
				images, err := formFiles(r, "images", files)
				if err != nil {
					return err
				}
				return svc.Update(ctx, id, in, images)
			},
			remove: svc.Delete,
			toggle: svc.ToggleActive,
			blank:  func() service.EventInput { return service.EventInput{IsActive: true} },
			input: func(e service.EventView) service.EventInput {
				return service.EventInput{
					Title:       e.Title,
					Description: e.Description,
					EventDate:   e.EventDate,
					Location:    e.Location,
					IsActive:    e.IsActive,
				}
			},
		},
	}
}

// newTeamHandler wires CRUDHandler to the team service.
func newTeamHandler(b base, svc *service.TeamService, maxUpload int64) *CRUDHandler[store.TeamMember, service.TeamMemberInput] {
	return &CRUDHandler[store.TeamMember, service.TeamMemberInput]{
		base:      b,
		maxUpload: maxUpload,
		ops: crudOps[store.TeamMember, service.TeamMemberInput]{
			path:         RouteAdmin + RouteTeam,
			name:         "Team member",
			plural:       "Team",
			nav:          "team",
			listTemplate: "admin/team",
			formTemplate: "admin/team_form",
			list:         svc.List,
			get:          svc.Get,
			create: func(ctx context.Context, in service.TeamMemberInput, r *http.Request, files *openFiles) (int64, error) {
				photo, err := formFile(r, "photo", files)
				if err != nil {
					return 0, err
				}
				return svc.Create(ctx, in, photo)
			},
			update: func(ctx context.Context, id int64, in service.TeamMemberInput, r *http.Request, files *openFiles) error {
				photo, err := formFile(r, "photo", files)
				if err != nil {
					return err
				}
				return svc.Update(ctx, id, in, photo)
			},
			remove: svc.Delete,
			toggle: svc.ToggleActive,
			blank:  func() service.TeamMemberInput { return service.TeamMemberInput{IsActive: true} },
			input: func(m store.TeamMember) service.TeamMemberInput {
				return service.TeamMemberInput{
					Name:     m.Name,
					Position: m.Position,
					Bio:      m.Bio,
					Email:    m.Email,
					IsActive: m.IsActive,
				}
			},
		},
	}
}
