// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers and the router of the site:
// the public landing page and contact form, the admin console and the
// operational endpoints.
package handler

import (
	"database/sql"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olegiv/olanding/internal/auth"
	"github.com/olegiv/olanding/internal/cache"
	"github.com/olegiv/olanding/internal/middleware"
	"github.com/olegiv/olanding/internal/render"
	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/session"
	"github.com/olegiv/olanding/internal/version"
)

// DefaultRequestTimeout bounds every request.
const DefaultRequestTimeout = 30 * time.Second

// Services bundles the domain services the handlers call.
type Services struct {
	Auth      *service.AuthService
	Sections  *service.SectionService
	Schools   *service.SchoolService
	Events    *service.EventService
	Team      *service.TeamService
	Inbox     *service.Inbox
	Landing   *service.LandingService
	Dashboard *service.Dashboard
}

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	DB       *sql.DB
	Sessions *session.Manager
	Guard    auth.Guard
	Renderer *render.Renderer
	Services Services
	Logger   *slog.Logger

	// Static is the embedded CSS tree served under /static/dist. Optional.
	Static     fs.FS
	UploadsDir string
	MaxUpload  int64

	IsDev          bool
	CSRFKey        []byte
	TrustedOrigins []string
	RequestTimeout time.Duration

	// Cache and CacheBackend are reported by /health. Optional.
	Cache        cache.Cache
	CacheBackend string

	// Registry enables request metrics and /metrics. Optional.
	Registry *prometheus.Registry
	Version  version.Info
}

// crudRoutes is the handler set behind one list entity.
type crudRoutes interface {
	List(http.ResponseWriter, *http.Request)
	NewForm(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	EditForm(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
	Toggle(http.ResponseWriter, *http.Request)
}

// registerCRUD registers the list-entity routes under base.
// Routes: GET base, GET|POST base/new, GET|POST base/edit/{id},
// GET base/delete/{id}, POST base/toggle-status/{id}
func registerCRUD(r chi.Router, base string, h crudRoutes) {
	r.Get(base, h.List)
	r.Get(base+RouteSuffixNew, h.NewForm)
	r.Post(base+RouteSuffixNew, h.Create)
	r.Get(base+RouteSuffixEdit, h.EditForm)
	r.Post(base+RouteSuffixEdit, h.Update)
	r.With(middleware.SameOriginGET).Get(base+RouteSuffixDelete, h.Delete)
	r.Post(base+RouteSuffixToggle, h.Toggle)
}

// registerSection registers a singleton section editor.
func registerSection(r chi.Router, route string, show, save http.HandlerFunc) {
	r.Get(route, show)
	r.Post(route, save)
}

// NewRouter builds the application router.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	guard := cfg.Guard
	b := base{renderer: cfg.Renderer, sessions: cfg.Sessions, guard: guard, logger: logger}

	authHandler := &AuthHandler{base: b, svc: cfg.Services.Auth, now: time.Now}
	adminHandler := &AdminHandler{
		base:      b,
		dashboard: cfg.Services.Dashboard,
		sections:  cfg.Services.Sections,
		maxUpload: cfg.MaxUpload,
	}
	messagesHandler := &MessagesHandler{base: b, inbox: cfg.Services.Inbox}
	frontendHandler := &FrontendHandler{base: b, landing: cfg.Services.Landing, inbox: cfg.Services.Inbox}
	healthHandler := &HealthHandler{
		db:         cfg.DB,
		sessions:   cfg.Sessions,
		guard:      guard,
		cache:      cfg.Cache,
		backend:    cfg.CacheBackend,
		uploadsDir: cfg.UploadsDir,
		version:    cfg.Version,
		startTime:  time.Now(),
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	if cfg.Registry != nil {
		r.Use(middleware.NewMetrics(cfg.Registry).Handler)
	}
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(timeout))
	r.Use(chimw.RedirectSlashes)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDev)
	securityConfig.ExcludePaths = []string{RouteMetrics}
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.Use(cfg.Sessions.SessionManager().LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(cfg.CSRFKey, cfg.IsDev, cfg.TrustedOrigins)))

	// Operational endpoints
	r.Get(RouteHealth, healthHandler.Health)
	if cfg.Registry != nil {
		r.Handle(RouteMetrics, promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}

	// Files
	if cfg.Static != nil {
		r.Handle(RouteStatic+"/*", middleware.StaticFiles(middleware.StaticMaxAge)(
			http.StripPrefix(RouteStatic+"/", http.FileServer(http.FS(cfg.Static)))))
	}
	r.Handle(RouteUploads+"/*", middleware.StaticFiles(middleware.UploadsMaxAge)(
		http.StripPrefix(RouteUploads+"/", http.FileServer(http.Dir(cfg.UploadsDir)))))

	// Public site
	r.Get(RouteRoot, frontendHandler.Home)
	r.Post(RouteContact, frontendHandler.Contact)

	r.Route(RouteAdmin, func(r chi.Router) {
		r.Use(middleware.NoStore)

		r.Get(RouteLogin, authHandler.LoginForm)
		r.Post(RouteLogin, authHandler.Login)
		r.Get(RouteLogout, authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.Sessions, guard))

			r.Get(RouteRoot, adminHandler.Dashboard)
			r.Get(RouteDashboard, adminHandler.Dashboard)
			r.Get(RouteChangePassword, authHandler.ChangePasswordForm)
			r.Post(RouteChangePassword, authHandler.ChangePassword)

			registerSection(r, RouteHero, adminHandler.Hero, adminHandler.SaveHero)
			registerSection(r, RouteAbout, adminHandler.About, adminHandler.SaveAbout)
			registerSection(r, RouteFooter, adminHandler.Footer, adminHandler.SaveFooter)

			registerCRUD(r, RouteSchools, newSchoolsHandler(b, cfg.Services.Schools, cfg.MaxUpload))
			registerCRUD(r, RouteEvents, newEventsHandler(b, cfg.Services.Events, cfg.MaxUpload))
			registerCRUD(r, RouteTeam, newTeamHandler(b, cfg.Services.Team, cfg.MaxUpload))

			r.Get(RouteMessages, messagesHandler.List)
			r.Get(RouteMessages+RouteSuffixView, messagesHandler.View)
			r.With(middleware.SameOriginGET).Get(RouteMessages+RouteSuffixDelete, messagesHandler.Delete)
			r.With(middleware.SameOriginGET).Get(RouteMessages+RouteSuffixMarkRead, messagesHandler.MarkRead)
			r.With(middleware.SameOriginGET).Get(RouteMessages+RouteSuffixMarkUnread, messagesHandler.MarkUnread)
		})
	})

	return r
}
