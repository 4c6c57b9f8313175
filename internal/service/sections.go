// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/olanding/internal/store"
)

// Invalidator drops cached public content after an admin change.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context) {}

// HeroInput is the editable part of the hero section.
type HeroInput struct {
	Title       string `form:"title" validate:"required,max=200"`
	Subtitle    string `form:"subtitle" validate:"max=500"`
	ButtonText  string `form:"button_text" validate:"max=100"`
	ButtonLink  string `form:"button_link" validate:"max=500"`
	RemoveImage bool   `form:"remove_image"`
}

// AboutInput is the editable part of the about section. Content is Markdown.
type AboutInput struct {
	Title       string `form:"title" validate:"required,max=200"`
	Content     string `form:"content" validate:"max=20000"`
	RemoveImage bool   `form:"remove_image"`
}

// FooterInput is the editable part of the footer.
type FooterInput struct {
	Description   string `form:"description" validate:"max=2000"`
	Address       string `form:"address" validate:"max=500"`
	Phone         string `form:"phone" validate:"max=50"`
	Email         string `form:"email" validate:"omitempty,email"`
	FacebookURL   string `form:"facebook_url" validate:"omitempty,url"`
	InstagramURL  string `form:"instagram_url" validate:"omitempty,url"`
	CopyrightText string `form:"copyright_text" validate:"max=200"`
	RemoveImage   bool   `form:"remove_image"`
}

// sectionOps binds the generic upsert to one section table.
type sectionOps[T comparable] struct {
	kind   string
	load   func(context.Context) (T, error)
	create func(context.Context, T) (int64, error)
	update func(context.Context, T) error
	image  func(*T) *sql.NullString
	touch  func(*T, time.Time)
	setID  func(*T, int64)
}

// SectionService edits the hero, about and footer singletons.
type SectionService struct {
	entityBase

	hero   sectionOps[store.HeroSection]
	about  sectionOps[store.AboutSection]
	footer sectionOps[store.FooterSection]
}

// NewSectionService creates a SectionService.
func NewSectionService(d Deps) *SectionService {
	s := &SectionService{entityBase: newEntityBase(d)}
	q := s.queries

	s.hero = sectionOps[store.HeroSection]{
		kind:   KindHero,
		load:   q.GetHeroSection,
		create: q.CreateHeroSection,
		update: q.UpdateHeroSection,
		image:  func(r *store.HeroSection) *sql.NullString { return &r.ImageFilename },
		touch:  func(r *store.HeroSection, t time.Time) { r.UpdatedAt = t },
		setID:  func(r *store.HeroSection, id int64) { r.ID = id },
	}
	s.about = sectionOps[store.AboutSection]{
		kind:   KindAbout,
		load:   q.GetAboutSection,
		create: q.CreateAboutSection,
		update: q.UpdateAboutSection,
		image:  func(r *store.AboutSection) *sql.NullString { return &r.ImageFilename },
		touch:  func(r *store.AboutSection, t time.Time) { r.UpdatedAt = t },
		setID:  func(r *store.AboutSection, id int64) { r.ID = id },
	}
	s.footer = sectionOps[store.FooterSection]{
		kind:   KindFooter,
		load:   q.GetFooterSection,
		create: q.CreateFooterSection,
		update: q.UpdateFooterSection,
		image:  func(r *store.FooterSection) *sql.NullString { return &r.ImageFilename },
		touch:  func(r *store.FooterSection, t time.Time) { r.UpdatedAt = t },
		setID:  func(r *store.FooterSection, id int64) { r.ID = id },
	}
	return s
}

// Hero returns the hero section; found is false when none exists yet.
func (s *SectionService) Hero(ctx context.Context) (store.HeroSection, bool, error) {
	return loadSection(ctx, s.hero)
}

// About returns the about section; found is false when none exists yet.
func (s *SectionService) About(ctx context.Context) (store.AboutSection, bool, error) {
	return loadSection(ctx, s.about)
}

// Footer returns the footer section; found is false when none exists yet.
func (s *SectionService) Footer(ctx context.Context) (store.FooterSection, bool, error) {
	return loadSection(ctx, s.footer)
}

// UpsertHero creates or updates the hero section. upload may be nil.
func (s *SectionService) UpsertHero(ctx context.Context, in HeroInput, upload *FileUpload) (store.HeroSection, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.ButtonText = strings.TrimSpace(in.ButtonText)
	in.ButtonLink = strings.TrimSpace(in.ButtonLink)
	if err := validateStruct(in); err != nil {
		return store.HeroSection{}, err
	}
	return upsertSection(ctx, s, s.hero, upload, in.RemoveImage, func(r *store.HeroSection) {
		r.Title = in.Title
		r.Subtitle = in.Subtitle
		r.ButtonText = in.ButtonText
		r.ButtonLink = in.ButtonLink
	})
}

// UpsertAbout creates or updates the about section. upload may be nil.
func (s *SectionService) UpsertAbout(ctx context.Context, in AboutInput, upload *FileUpload) (store.AboutSection, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if err := validateStruct(in); err != nil {
		return store.AboutSection{}, err
	}
	return upsertSection(ctx, s, s.about, upload, in.RemoveImage, func(r *store.AboutSection) {
		r.Title = in.Title
		r.Content = in.Content
	})
}

// UpsertFooter creates or updates the footer. upload replaces the logo.
func (s *SectionService) UpsertFooter(ctx context.Context, in FooterInput, upload *FileUpload) (store.FooterSection, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.FacebookURL = strings.TrimSpace(in.FacebookURL)
	in.InstagramURL = strings.TrimSpace(in.InstagramURL)
	in.CopyrightText = strings.TrimSpace(in.CopyrightText)
	if err := validateStruct(in); err != nil {
		return store.FooterSection{}, err
	}
	return upsertSection(ctx, s, s.footer, upload, in.RemoveImage, func(r *store.FooterSection) {
		r.Description = in.Description
		r.Address = in.Address
		r.Phone = in.Phone
		r.Email = in.Email
		r.FacebookURL = in.FacebookURL
		r.InstagramURL = in.InstagramURL
		r.CopyrightText = in.CopyrightText
	})
}

func loadSection[T comparable](ctx context.Context, ops sectionOps[T]) (T, bool, error) {
	row, err := ops.load(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		return row, false, fmt.Errorf("loading %s section: %w", ops.kind, err)
	}
	return row, true, nil
}

// upsertSection updates the first row of a section table in place, or
// inserts it when the table is empty. The previous image is kept unless a
// new one is uploaded or removal is requested; a replaced image is deleted
// only after the row references its successor. A call that changes nothing
// performs no write.
func upsertSection[T comparable](ctx context.Context, s *SectionService, ops sectionOps[T],
	upload *FileUpload, removeImage bool, apply func(*T),
) (T, error) {
	row, exists, err := loadSection(ctx, ops)
	if err != nil {
		return row, err
	}

	before := row
	oldImage := ops.image(&row).String
	if !ops.image(&row).Valid {
		oldImage = ""
	}

	apply(&row)

	var newImage string
	if upload != nil {
		if newImage, err = s.uploads.Save(ops.kind, upload); err != nil {
			return before, err
		}
		*ops.image(&row) = sql.NullString{String: newImage, Valid: true}
	} else if removeImage {
		*ops.image(&row) = sql.NullString{}
	}

	if exists && row == before {
		return row, nil
	}

	ops.touch(&row, s.now())
	if exists {
		err = ops.update(ctx, row)
	} else {
		var id int64
		if id, err = ops.create(ctx, row); err == nil {
			ops.setID(&row, id)
		}
	}
	if err != nil {
		s.uploads.Remove(ops.kind, newImage)
		return before, fmt.Errorf("saving %s section: %w", ops.kind, err)
	}

	if current := ops.image(&row); oldImage != "" && (!current.Valid || current.String != oldImage) {
		s.uploads.Remove(ops.kind, oldImage)
	}

	s.logger.Info("section saved", "section", ops.kind, "created", !exists, "image", ops.image(&row).String)
	s.changed(ctx)
	return row, nil
}
