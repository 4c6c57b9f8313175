// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/olanding/internal/store"
)

// SchoolInput is the school form.
type SchoolInput struct {
	Name        string `form:"name" validate:"required,max=200"`
	Description string `form:"description" validate:"max=5000"`
	Address     string `form:"address" validate:"max=500"`
	WebsiteURL  string `form:"website_url" validate:"omitempty,url"`
	IsActive    bool   `form:"is_active"`
	RemoveLogo  bool   `form:"remove_logo"`
}

func (in *SchoolInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Address = strings.TrimSpace(in.Address)
	in.WebsiteURL = strings.TrimSpace(in.WebsiteURL)
}

// SchoolService manages schools and their logos.
type SchoolService struct {
	entityBase
}

// NewSchoolService creates a SchoolService.
func NewSchoolService(d Deps) *SchoolService {
	return &SchoolService{entityBase: newEntityBase(d)}
}

// Create validates in, stores the optional logo and inserts the school.
func (s *SchoolService) Create(ctx context.Context, in SchoolInput, logo *FileUpload) (int64, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return 0, err
	}

	logoName, err := s.saveOne(KindSchools, logo)
	if err != nil {
		return 0, err
	}

	now := s.now()
	id, err := s.queries.CreateSchool(ctx, store.CreateSchoolParams{
		Name:         in.Name,
		Description:  in.Description,
		Address:      in.Address,
		WebsiteURL:   in.WebsiteURL,
		LogoFilename: logoName,
		IsActive:     in.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.uploads.Remove(KindSchools, logoName.String)
		return 0, fmt.Errorf("creating school: %w", err)
	}

	s.logger.Info("school created", "id", id, "name", in.Name)
	s.changed(ctx)
	return id, nil
}

// Get returns one school or ErrNotFound.
func (s *SchoolService) Get(ctx context.Context, id int64) (store.School, error) {
	school, err := s.queries.GetSchool(ctx, id)
	if err != nil {
		return school, notFound(err, "school")
	}
	return school, nil
}

// List returns all schools, newest first.
func (s *SchoolService) List(ctx context.Context) ([]store.School, error) {
	schools, err := s.queries.ListSchools(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing schools: %w", err)
	}
	return schools, nil
}

// ListActive returns the schools shown on the landing page.
func (s *SchoolService) ListActive(ctx context.Context) ([]store.School, error) {
	schools, err := s.queries.ListActiveSchools(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active schools: %w", err)
	}
	return schools, nil
}

// Update rewrites a school. A new logo replaces the old one; RemoveLogo
// clears it. The orphaned file is deleted after the row is written.
func (s *SchoolService) Update(ctx context.Context, id int64, in SchoolInput, logo *FileUpload) error {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	uploaded, err := s.saveOne(KindSchools, logo)
	if err != nil {
		return err
	}
	next, orphan := replaceSingle(current.LogoFilename, uploaded, in.RemoveLogo)

	err = s.queries.UpdateSchool(ctx, store.UpdateSchoolParams{
		Name:         in.Name,
		Description:  in.Description,
		Address:      in.Address,
		WebsiteURL:   in.WebsiteURL,
		LogoFilename: next,
		IsActive:     in.IsActive,
		UpdatedAt:    s.now(),
		ID:           id,
	})
	if err != nil {
		s.uploads.Remove(KindSchools, uploaded.String)
		return notFound(err, "updating school")
	}

	s.uploads.Remove(KindSchools, orphan)
	s.logger.Info("school updated", "id", id)
	s.changed(ctx)
	return nil
}

// Delete removes the school's logo (best-effort) and then the row.
func (s *SchoolService) Delete(ctx context.Context, id int64) error {
	school, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if school.LogoFilename.Valid {
		s.uploads.Remove(KindSchools, school.LogoFilename.String)
	}
	if err := s.queries.DeleteSchool(ctx, id); err != nil {
		return notFound(err, "deleting school")
	}

	s.logger.Info("school deleted", "id", id, "name", school.Name)
	s.changed(ctx)
	return nil
}

// ToggleActive flips is_active and returns the new value.
func (s *SchoolService) ToggleActive(ctx context.Context, id int64) (bool, error) {
	school, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	active := !school.IsActive
	err = s.queries.SetSchoolActive(ctx, store.SetSchoolActiveParams{IsActive: active, UpdatedAt: s.now(), ID: id})
	if err != nil {
		return false, notFound(err, "toggling school")
	}

	s.changed(ctx)
	return active, nil
}
