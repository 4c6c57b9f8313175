// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": {Data: []byte(
			`{{define "base"}}<title>{{.Title}}</title>{{block "body" .}}{{end}}|{{.CurrentYear}}{{end}}`)},
		"layouts/admin.html": {Data: []byte(
			`{{define "body"}}[admin {{.Admin}}]{{template "flash" .}}{{template "content" .}}{{end}}`)},
		"partials/flash.html": {Data: []byte(
			`{{define "flash"}}{{if .Flash}}({{.FlashType}}:{{.Flash}}){{end}}{{end}}`)},
		"admin/dashboard.html": {Data: []byte(`{{define "content"}}count={{.Data}}{{end}}`)},
		"auth/login.html":      {Data: []byte(`{{define "body"}}login {{.FieldError "username"}}{{end}}`)},
		"public/index.html":    {Data: []byte(`{{define "body"}}{{template "flash" .}}home {{truncate .Data 5}}{{end}}`)},
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.now = func() time.Time { return time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC) }
	return r
}

func TestNew_ParsesGroups(t *testing.T) {
	r := newTestRenderer(t)
	for _, name := range []string{"admin/dashboard", "auth/login", "public/index"} {
		if !r.Has(name) {
			t.Errorf("template %s not parsed", name)
		}
	}
	if r.Has("partials/flash") {
		t.Error("partials should not be pages")
	}
}

func TestNew_ParseError(t *testing.T) {
	fsys := testFS()
	fsys["admin/broken.html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}{{.Data{{end}}`)}
	if _, err := New(Config{TemplatesFS: fsys}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRender_Layouts(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		name string
		data TemplateData
		want string
	}{
		{
			name: "admin/dashboard",
			data: TemplateData{Title: "Dashboard", Admin: "admin", Data: 3},
			want: "<title>Dashboard</title>[admin admin]count=3|2026",
		},
		{
			name: "auth/login",
			data: TemplateData{Title: "Login", Errors: map[string]string{"username": "bad"}},
			want: "<title>Login</title>login bad|2026",
		},
		{
			name: "public/index",
			data: TemplateData{Data: "Olanding", Flash: "Sent", FlashType: "success"},
			want: "<title></title>(success:Sent)home Oland...|2026",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if err := r.Render(rr, req, tt.name, tt.data); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if rr.Code != http.StatusOK {
				t.Errorf("status = %d", rr.Code)
			}
			if got := rr.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestRenderStatus(t *testing.T) {
	r := newTestRenderer(t)
	rr := httptest.NewRecorder()
	if err := r.RenderStatus(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, "public/index", TemplateData{Data: "x"}); err != nil {
		t.Fatalf("RenderStatus: %v", err)
	}
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)
	rr := httptest.NewRecorder()
	err := r.Render(rr, httptest.NewRequest(http.MethodGet, "/", nil), "admin/missing", TemplateData{})
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
	if rr.Body.Len() != 0 {
		t.Errorf("nothing should be written on error, got %q", rr.Body.String())
	}
}

func TestTemplateFuncs_Present(t *testing.T) {
	funcs := (&Renderer{}).TemplateFuncs()
	for _, name := range []string{"formatDate", "formatDateTime", "eventDate", "truncate", "uploadURL", "nl2br", "add", "dict"} {
		if _, ok := funcs[name]; !ok {
			t.Errorf("TemplateFuncs missing function: %s", name)
		}
	}
}

func TestTemplateFuncs_FormatDate(t *testing.T) {
	funcs := (&Renderer{}).TemplateFuncs()

	formatDate := funcs["formatDate"].(func(time.Time) string)
	testTime := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	if got := formatDate(testTime); got != "Mar 15, 2025" {
		t.Errorf("formatDate() = %q, want %q", got, "Mar 15, 2025")
	}
}

func TestFormatEventDate(t *testing.T) {
	tests := map[string]string{
		"2026-05-01": "May 1, 2026",
		"":           "",
		"soon":       "soon",
	}
	for in, want := range tests {
		if got := formatEventDate(in); got != want {
			t.Errorf("formatEventDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		length int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 9, "truncated..."},
		{"Школа робототехники", 5, "Школа..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.length); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.length, got, tt.want)
		}
	}
}

func TestNl2br_Escapes(t *testing.T) {
	nl2br := (&Renderer{}).TemplateFuncs()["nl2br"].(func(string) template.HTML)
	got := nl2br("<b>hi</b>\nthere")
	if want := template.HTML("&lt;b&gt;hi&lt;/b&gt;<br>there"); got != want {
		t.Errorf("nl2br = %q, want %q", got, want)
	}
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "two")
	if err != nil {
		t.Fatalf("dict: %v", err)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("dict = %v", m)
	}
	if _, err := dict("a"); err == nil {
		t.Error("expected error for odd arguments")
	}
	if _, err := dict(1, 2); err == nil {
		t.Error("expected error for non-string key")
	}
}
