// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded HTML templates and renders pages with
// the shared layout data (flash message, current admin, footer year).
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/session"
)

// Template groups. Each group is parsed with its own layouts.
const (
	groupAdmin  = "admin"
	groupAuth   = "auth"
	groupPublic = "public"
)

const (
	baseLayout  = "layouts/base.html"
	adminLayout = "layouts/admin.html"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates map[string]*template.Template
	sessions  *session.Manager
	isDev     bool
	now       func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	Sessions    *session.Manager // optional; enables flash messages
	IsDev       bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		sessions:  cfg.Sessions,
		isDev:     cfg.IsDev,
		now:       time.Now,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses every page of each group together with its layouts
// and all partials. Pages are named "<group>/<file without .html>".
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("listing partials: %w", err)
	}

	layouts := map[string][]string{
		groupAdmin:  {baseLayout, adminLayout},
		groupAuth:   {baseLayout},
		groupPublic: {baseLayout},
	}

	for group, groupLayouts := range layouts {
		pages, err := templateFiles(templatesFS, group)
		if err != nil {
			return fmt.Errorf("listing %s templates: %w", group, err)
		}

		for _, page := range pages {
			name := group + "/" + strings.TrimSuffix(path.Base(page), ".html")

			files := append([]string{}, groupLayouts...)
			files = append(files, partials...)
			files = append(files, page)

			tmpl, err := template.New("").Funcs(r.TemplateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}

	return nil
}

// templateFiles returns all .html files in dir. A missing dir is empty.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// TemplateFuncs returns the functions available to every template.
func (r *Renderer) TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"eventDate": formatEventDate,
		"truncate":  truncate,
		"uploadURL": service.UploadURL,
		"nl2br": func(s string) template.HTML {
			escaped := template.HTMLEscapeString(s)
			return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>")) // #nosec G203 -- escaped above
		},
		"add": func(a, b int) int {
			return a + b
		},
		"dict": dict,
	}
}

// dict builds a map from alternating keys and values, for passing several
// arguments to a partial.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// formatEventDate renders a YYYY-MM-DD event date; other values pass through.
func formatEventDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006")
}

func truncate(s string, length int) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	runes := []rune(s)
	return string(runes[:length]) + "..."
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Data        any
	Form        any
	Errors      map[string]string
	Flash       string
	FlashType   string
	CurrentYear int
	Admin       string // logged-in username, empty on public pages
	Nav         string // active admin menu entry

	// SessionExpires is when the admin login ends; zero on public pages.
	SessionExpires time.Time
	IsDev       bool
}

// FieldError returns the validation message for field.
func (d TemplateData) FieldError(field string) string {
	return d.Errors[field]
}

// Render renders a template with the given data and status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = r.now().Year()
	data.IsDev = r.isDev

	if r.sessions != nil && data.Flash == "" {
		data.Flash, data.FlashType = r.sessions.PopFlash(req.Context())
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("writing response failed", "template", name, "error", err)
	}
	return nil
}
