// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds path and file name helpers for user uploads.
package util

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned when a path resolves outside its base directory.
var ErrPathTraversal = errors.New("path escapes base directory")

// IsPlainFilename reports whether name is a single path element with no
// directory part, so it can be stored and later joined to a base directory.
func IsPlainFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

// ValidatePathWithinBase returns ErrPathTraversal unless target, once
// cleaned and made absolute, is base itself or lies below it.
func ValidatePathWithinBase(base, target string) error {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	// The trailing separator keeps /uploads-evil from matching /uploads.
	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return ErrPathTraversal
	}
	return nil
}

// SafeJoinPath joins components onto base and rejects results outside base.
func SafeJoinPath(base string, components ...string) (string, error) {
	full := filepath.Join(append([]string{base}, components...)...)
	if err := ValidatePathWithinBase(base, full); err != nil {
		return "", err
	}
	return full, nil
}
