// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteContact receives the public contact form.
	RouteContact = "/contact"
	// RouteHealth is the health check endpoint.
	RouteHealth = "/health"
	// RouteMetrics exposes Prometheus metrics.
	RouteMetrics = "/metrics"
	// RouteUploads serves stored images.
	RouteUploads = "/uploads"
	// RouteStatic serves embedded CSS.
	RouteStatic = "/static/dist"

	// RouteAdmin is the admin console prefix.
	RouteAdmin = "/admin"
	// RouteLogin is the login route (relative to /admin).
	RouteLogin = "/login"
	// RouteLogout is the logout route (relative to /admin).
	RouteLogout = "/logout"
	// RouteDashboard is the dashboard route (relative to /admin).
	RouteDashboard = "/dashboard"
	// RouteChangePassword is the password change route (relative to /admin).
	RouteChangePassword = "/change-password"

	RouteHero   = "/hero"
	RouteAbout  = "/about"
	RouteFooter = "/footer"

	RouteSchools  = "/schools"
	RouteEvents   = "/events"
	RouteTeam     = "/team"
	RouteMessages = "/messages"

	// Suffixes for list-entity and inbox routes.
	RouteSuffixNew        = "/new"
	RouteSuffixEdit       = "/edit/{id}"
	RouteSuffixDelete     = "/delete/{id}"
	RouteSuffixToggle     = "/toggle-status/{id}"
	RouteSuffixView       = "/view/{id}"
	RouteSuffixMarkRead   = "/mark_read/{id}"
	RouteSuffixMarkUnread = "/mark_unread/{id}"
)

// Redirect targets.
const (
	redirectAdmin     = RouteAdmin + RouteDashboard
	redirectLogin     = RouteAdmin + RouteLogin
	redirectMessages  = RouteAdmin + RouteMessages
	redirectContact   = RouteRoot + "#contact"
	redirectChangePwd = RouteAdmin + RouteChangePassword
)

// Flash message types understood by the templates.
const (
	flashTypeSuccess = "success"
	flashTypeError   = "error"
	flashTypeInfo    = "info"
)
