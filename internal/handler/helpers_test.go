// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/olegiv/olanding/internal/auth"
	"github.com/olegiv/olanding/internal/cache"
	"github.com/olegiv/olanding/internal/render"
	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/session"
	"github.com/olegiv/olanding/internal/store"
	"github.com/olegiv/olanding/internal/testutil"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "correct-horse-battery"
)

// testTemplates renders just enough of each page for assertions.
var testTemplates = fstest.MapFS{
	"layouts/base.html":  {Data: []byte(`{{define "base"}}{{block "body" .}}{{end}}{{end}}`)},
	"layouts/admin.html": {Data: []byte(`{{define "body"}}[{{.Admin}}]{{if not .SessionExpires.IsZero}} expires={{.SessionExpires.Format "15:04"}}{{end}}{{template "flash" .}}{{block "content" .}}{{end}}{{end}}`)},
	"partials/flash.html": {Data: []byte(
		`{{define "flash"}}{{if .Flash}}({{.FlashType}}:{{.Flash}}){{end}}{{end}}`)},
	"partials/errors.html": {Data: []byte(
		`{{define "errors"}}{{range $k, $v := .Errors}}!{{$k}}:{{$v}}{{end}}{{end}}`)},

	"auth/login.html": {Data: []byte(`{{define "body"}}login{{template "flash" .}} user={{.Form}}{{end}}`)},

	"public/index.html": {Data: []byte(
		`{{define "body"}}home{{template "flash" .}}{{with .Data.Hero}} hero={{.Title}}{{end}} schools={{len .Data.Schools}}{{template "errors" .}}{{end}}`)},

	"admin/dashboard.html": {Data: []byte(
		`{{define "content"}}dashboard messages={{.Data.Messages}} unread={{.Data.UnreadMessages}} schools={{.Data.Schools}}{{end}}`)},
	"admin/change_password.html": {Data: []byte(`{{define "content"}}password{{template "errors" .}}{{end}}`)},
	"admin/hero.html":            {Data: []byte(`{{define "content"}}hero title={{.Form.Title}}{{template "errors" .}}{{end}}`)},
	"admin/about.html":           {Data: []byte(`{{define "content"}}about title={{.Form.Title}}{{template "errors" .}}{{end}}`)},
	"admin/footer.html":          {Data: []byte(`{{define "content"}}footer email={{.Form.Email}}{{template "errors" .}}{{end}}`)},

	"admin/schools.html":     {Data: []byte(`{{define "content"}}{{range .Data}} school={{.Name}} active={{.IsActive}}{{end}}{{end}}`)},
	"admin/school_form.html": {Data: []byte(`{{define "content"}}form action={{.Data.Action}} name={{.Form.Name}}{{template "errors" .}}{{end}}`)},
	"admin/events.html":      {Data: []byte(`{{define "content"}}{{range .Data}} event={{.Title}} images={{len .Images}}{{end}}{{end}}`)},
	"admin/event_form.html":  {Data: []byte(`{{define "content"}}form action={{.Data.Action}} title={{.Form.Title}}{{template "errors" .}}{{end}}`)},
	"admin/team.html":        {Data: []byte(`{{define "content"}}{{range .Data}} member={{.Name}}{{end}}{{end}}`)},
	"admin/team_form.html":   {Data: []byte(`{{define "content"}}form action={{.Data.Action}} name={{.Form.Name}}{{template "errors" .}}{{end}}`)},

	"admin/messages.html": {Data: []byte(
		`{{define "content"}}total={{.Data.Stats.Total}} unread={{.Data.Stats.Unread}}{{range .Data.Messages}} msg={{.Name}}{{end}}{{end}}`)},
	"admin/message_view.html": {Data: []byte(`{{define "content"}}view={{.Data.Name}} read={{.Data.IsRead}}{{end}}`)},
}

// testApp is the full router over a temporary database.
type testApp struct {
	t        *testing.T
	server   *httptest.Server
	client   *http.Client
	services Services
	uploads  string
	queries  *store.Queries

	// clockSkew shifts the guard's clock to simulate elapsed time.
	clockSkew atomic.Int64
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.TestDB(t)
	q := store.New(db)
	logger := testutil.DiscardLogger()
	uploadsDir := t.TempDir()

	app := &testApp{t: t, uploads: uploadsDir, queries: q}

	landing := service.NewLandingService(q, nil, 0, logger)
	deps := service.Deps{
		Queries: q,
		Uploads: service.NewUploadManager(uploadsDir, 5<<20, logger),
		Cache:   landing,
		Logger:  logger,
	}
	app.services = Services{
		Auth:      service.NewAuthService(deps),
		Sections:  service.NewSectionService(deps),
		Schools:   service.NewSchoolService(deps),
		Events:    service.NewEventService(deps),
		Team:      service.NewTeamService(deps),
		Inbox:     service.NewInbox(deps),
		Landing:   landing,
		Dashboard: service.NewDashboard(q),
	}

	if _, err := app.services.Auth.ResetPassword(context.Background(), testAdminUser, testAdminPassword); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	sessions := session.NewManager(session.New(db.DB, true))
	renderer, err := render.New(render.Config{TemplatesFS: testTemplates, Sessions: sessions, IsDev: true})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	healthCache := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = healthCache.Close() })

	guard := auth.Guard{
		Lifetime: auth.SessionLifetime,
		Now: func() time.Time {
			return time.Now().Add(time.Duration(app.clockSkew.Load()))
		},
	}

	router := NewRouter(RouterConfig{
		DB:         db.DB,
		Sessions:   sessions,
		Guard:      guard,
		Renderer:   renderer,
		Services:   app.services,
		Logger:     logger,
		UploadsDir: uploadsDir,
		MaxUpload:  5 << 20,
		IsDev:      true,
		CSRFKey:    []byte("0123456789abcdef0123456789abcdef"),
		Registry:   prometheus.NewRegistry(),

		Cache:        healthCache,
		CacheBackend: "memory",
	})

	app.server = httptest.NewServer(router)
	t.Cleanup(app.server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	app.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return app
}

// response is a fully read HTTP response.
type response struct {
	code     int
	body     string
	location string
	header   http.Header
}

func (a *testApp) do(req *http.Request) response {
	a.t.Helper()
	resp, err := a.client.Do(req)
	if err != nil {
		a.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		a.t.Fatalf("reading body: %v", err)
	}
	return response{
		code:     resp.StatusCode,
		body:     string(body),
		location: resp.Header.Get("Location"),
		header:   resp.Header,
	}
}

func (a *testApp) get(path string) response {
	a.t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	if err != nil {
		a.t.Fatalf("NewRequest: %v", err)
	}
	return a.do(req)
}

func (a *testApp) postForm(path string, values url.Values) response {
	a.t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(values.Encode()))
	if err != nil {
		a.t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

// testFile is one file part of a multipart request.
type testFile struct {
	field, name string
	data        []byte
}

func (a *testApp) postMultipart(path string, values url.Values, files ...testFile) response {
	a.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range values {
		for _, v := range vals {
			if err := mw.WriteField(key, v); err != nil {
				a.t.Fatalf("WriteField: %v", err)
			}
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			a.t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			a.t.Fatalf("writing file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		a.t.Fatalf("closing multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, &buf)
	if err != nil {
		a.t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(req)
}

// login signs in as the seeded admin and checks the redirect.
func (a *testApp) login() {
	a.t.Helper()
	resp := a.postForm("/admin/login", url.Values{
		"username": {testAdminUser},
		"password": {testAdminPassword},
	})
	if resp.code != http.StatusSeeOther || resp.location != "/admin/dashboard" {
		a.t.Fatalf("login: status %d location %q, want 303 /admin/dashboard", resp.code, resp.location)
	}
}

func assertRedirect(t *testing.T, resp response, location string) {
	t.Helper()
	if resp.code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303 (body %q)", resp.code, resp.body)
	}
	if resp.location != location {
		t.Fatalf("Location = %q, want %q", resp.location, location)
	}
}

func assertContains(t *testing.T, resp response, want string) {
	t.Helper()
	if !strings.Contains(resp.body, want) {
		t.Errorf("body %q does not contain %q", resp.body, want)
	}
}
