// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the business rules of the site: section upserts,
// list-entity CRUD with owned uploads, the contact inbox, admin
// authentication and landing page assembly.
package service

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when the addressed record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError describes user input that was rejected. Handlers show
// Message next to the form field named Field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// invalid is a shorthand constructor.
func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// notFound maps sql.ErrNoRows to ErrNotFound and wraps everything else.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the `validate` tags on v and converts the first
// failure into a *ValidationError. Field names come from the `form` tag.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field(), label+" is required")
	case "email":
		return invalid(fe.Field(), "Please enter a valid email address")
	case "min":
		return invalid(fe.Field(), fmt.Sprintf("%s must be at least %s characters", label, fe.Param()))
	case "max":
		return invalid(fe.Field(), fmt.Sprintf("%s must be at most %s characters", label, fe.Param()))
	case "url", "http_url":
		return invalid(fe.Field(), label+" must be a valid URL")
	default:
		return invalid(fe.Field(), label+" is invalid")
	}
}

// fieldLabel turns "website_url" into "Website url".
func fieldLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}
