// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// Cache lifetimes for file routes, in seconds.
const (
	StaticMaxAge  = 31536000 // embedded CSS, one year
	UploadsMaxAge = 604800   // admin uploads, one week
)

// StaticFiles serves files with a public Cache-Control header. Directory
// listings are refused with 404.
func StaticFiles(maxAge int) func(http.Handler) http.Handler {
	cacheControl := "public, max-age=" + strconv.Itoa(maxAge)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", cacheControl)
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	}
}
