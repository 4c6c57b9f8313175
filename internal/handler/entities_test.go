// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/testutil"
)

func TestSchools_CreateWithLogo(t *testing.T) {
	app := newTestApp(t)
	app.login()

	resp := app.get("/admin/schools/new")
	if resp.code != http.StatusOK {
		t.Fatalf("new form status = %d", resp.code)
	}
	assertContains(t, resp, "form action=/admin/schools/new")

	resp = app.postMultipart("/admin/schools/new", url.Values{
		"name":        {"North Campus"},
		"description": {"Our first school"},
		"website_url": {"https://north.example.com"},
		"is_active":   {"on"},
	}, testFile{field: "logo", name: "logo.png", data: testutil.PNG(t, 16, 16)})
	assertRedirect(t, resp, "/admin/schools")
	assertContains(t, app.get("/admin/schools"), "school=North Campus active=true")

	schools, err := app.services.Schools.List(t.Context())
	if err != nil || len(schools) != 1 {
		t.Fatalf("List: %v (%d schools)", err, len(schools))
	}
	school := schools[0]
	if !school.LogoFilename.Valid {
		t.Fatal("logo filename not stored")
	}
	if _, err := os.Stat(filepath.Join(app.uploads, service.KindSchools, school.LogoFilename.String)); err != nil {
		t.Fatalf("logo file missing: %v", err)
	}

	// The stored logo is served under /uploads.
	logo := app.get(service.UploadURL(service.KindSchools, school.LogoFilename.String))
	if logo.code != http.StatusOK {
		t.Fatalf("GET logo status = %d", logo.code)
	}
	if !strings.HasPrefix(logo.body, "\x89PNG") {
		t.Error("served logo is not a PNG")
	}

	// The landing page lists the active school.
	assertContains(t, app.get("/"), "schools=1")
}

func TestSchools_Validation(t *testing.T) {
	app := newTestApp(t)
	app.login()

	resp := app.postForm("/admin/schools/new", url.Values{"name": {"   "}, "description": {"kept"}})
	if resp.code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.code)
	}
	assertContains(t, resp, "!name:Name is required")

	resp = app.postMultipart("/admin/schools/new", url.Values{"name": {"Bad Logo"}},
		testFile{field: "logo", name: "logo.gif", data: []byte("GIF89a")})
	if resp.code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.code)
	}
	assertContains(t, resp, "!logo:Allowed image types")
	assertContains(t, resp, "name=Bad Logo")

	schools, err := app.services.Schools.List(t.Context())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(schools) != 0 {
		t.Errorf("got %d schools after rejected submissions, want 0", len(schools))
	}
}

func TestSchools_EditToggleDelete(t *testing.T) {
	app := newTestApp(t)
	app.login()

	id, err := app.services.Schools.Create(t.Context(), service.SchoolInput{Name: "Old Name", IsActive: true}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	editURL := "/admin/schools/edit/" + itoa(id)

	resp := app.get(editURL)
	if resp.code != http.StatusOK {
		t.Fatalf("edit form status = %d", resp.code)
	}
	assertContains(t, resp, "name=Old Name")
	assertContains(t, resp, "form action="+editURL)

	assertRedirect(t, app.postForm(editURL, url.Values{"name": {"New Name"}, "is_active": {"1"}}), "/admin/schools")
	assertContains(t, app.get("/admin/schools"), "(success:School updated successfully)")

	school, err := app.services.Schools.Get(t.Context(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if school.Name != "New Name" {
		t.Errorf("Name = %q, want %q", school.Name, "New Name")
	}

	// Script clients get JSON.
	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/admin/schools/toggle-status/"+itoa(id), nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	resp = app.do(req)
	if resp.code != http.StatusOK {
		t.Fatalf("toggle status = %d", resp.code)
	}
	var toggled struct {
		Success  bool  `json:"success"`
		ID       int64 `json:"id"`
		IsActive bool  `json:"is_active"`
	}
	if err := json.Unmarshal([]byte(resp.body), &toggled); err != nil {
		t.Fatalf("decoding toggle response %q: %v", resp.body, err)
	}
	if !toggled.Success || toggled.ID != id || toggled.IsActive {
		t.Errorf("toggle response = %+v, want success for inactive %d", toggled, id)
	}

	// Forms get a redirect with a flash.
	assertRedirect(t, app.postForm("/admin/schools/toggle-status/"+itoa(id), nil), "/admin/schools")
	assertContains(t, app.get("/admin/schools"), "(success:School activated)")

	assertRedirect(t, app.get("/admin/schools/delete/"+itoa(id)), "/admin/schools")
	assertContains(t, app.get("/admin/schools"), "(success:School deleted successfully)")

	if _, err := app.services.Schools.Get(t.Context(), id); err == nil {
		t.Error("school still exists after delete")
	}
}

func TestSchools_NotFound(t *testing.T) {
	app := newTestApp(t)
	app.login()

	for _, path := range []string{
		"/admin/schools/edit/999",
		"/admin/schools/delete/999",
		"/admin/schools/edit/abc",
	} {
		t.Run(path, func(t *testing.T) {
			assertRedirect(t, app.get(path), "/admin/schools")
			assertContains(t, app.get("/admin/schools"), "(error:School not found)")
		})
	}

	assertRedirect(t, app.postForm("/admin/schools/edit/999", url.Values{"name": {"Ghost"}}), "/admin/schools")

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/admin/schools/toggle-status/999", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if resp := app.do(req); resp.code != http.StatusNotFound {
		t.Errorf("JSON toggle of missing school: status %d, want 404", resp.code)
	}
}

func TestEvents_MultipleImages(t *testing.T) {
	app := newTestApp(t)
	app.login()

	resp := app.postMultipart("/admin/events/new", url.Values{
		"title":      {"Open Day"},
		"event_date": {"2026-05-01"},
		"location":   {"Main hall"},
		"is_active":  {"on"},
	},
		testFile{field: "images", name: "one.png", data: testutil.PNG(t, 8, 8)},
		testFile{field: "images", name: "two.png", data: testutil.PNG(t, 8, 8)},
	)
	assertRedirect(t, resp, "/admin/events")
	assertContains(t, app.get("/admin/events"), "event=Open Day images=2")

	resp = app.postForm("/admin/events/new", url.Values{"title": {"Bad date"}, "event_date": {"01/05/2026"}})
	if resp.code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.code)
	}
	assertContains(t, resp, "!event_date:")
	assertContains(t, resp, "title=Bad date")
}

func TestTeam_Create(t *testing.T) {
	app := newTestApp(t)
	app.login()

	resp := app.postForm("/admin/team/new", url.Values{"name": {"Ada"}})
	if resp.code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.code)
	}
	assertContains(t, resp, "!position:Position is required")

	assertRedirect(t, app.postForm("/admin/team/new", url.Values{
		"name":      {"Ada"},
		"position":  {"Director"},
		"is_active": {"on"},
	}), "/admin/team")
	resp = app.get("/admin/team")
	assertContains(t, resp, "member=Ada")
	assertContains(t, resp, "(success:Team member created successfully)")
}
