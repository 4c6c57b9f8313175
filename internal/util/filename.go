// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

var (
	// unsafeFilenameChars matches everything outside the portable filename set.
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
	repeatedUnderscores = regexp.MustCompile(`_{2,}`)
)

// SecureFilename turns a client-supplied file name into a portable ASCII
// name: directories are dropped, letters are transliterated ("Café" becomes
// "Cafe", "Школа" becomes "Shkola"), whitespace becomes "_" and any other
// character outside [A-Za-z0-9_.-] is removed. Leading dots and underscores
// are stripped so the result is never hidden or relative.
//
// An empty string is returned when nothing usable remains.
func SecureFilename(name string) string {
	// Browsers on Windows may send the full client path.
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	if name == "." || name == "/" {
		return ""
	}

	name = norm.NFKC.String(name)
	name = unidecode.Unidecode(name)

	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = repeatedUnderscores.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, "._")

	if name == "" || strings.Trim(name, ".") == "" {
		return ""
	}
	return name
}

// Ext returns the lower-cased extension of name without the leading dot.
func Ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
