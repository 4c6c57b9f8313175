// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

// Section tables are de-facto singletons: reads always pick the lowest id so
// repeated calls resolve to the same row even if extra rows exist.

// GetHeroSection returns the first hero row.
func (q *Queries) GetHeroSection(ctx context.Context) (HeroSection, error) {
	var s HeroSection
	err := q.get(ctx, &s,
		`SELECT id, title, subtitle, button_text, button_link, image_filename, updated_at
		 FROM hero_section ORDER BY id LIMIT 1`)
	return s, err
}

// CreateHeroSection inserts a hero row and returns its id.
func (q *Queries) CreateHeroSection(ctx context.Context, s HeroSection) (int64, error) {
	return q.insert(ctx,
		`INSERT INTO hero_section (title, subtitle, button_text, button_link, image_filename, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.Title, s.Subtitle, s.ButtonText, s.ButtonLink, s.ImageFilename, s.UpdatedAt,
	)
}

// UpdateHeroSection rewrites the hero row identified by s.ID.
func (q *Queries) UpdateHeroSection(ctx context.Context, s HeroSection) error {
	return q.execAffecting(ctx,
		`UPDATE hero_section SET title = ?, subtitle = ?, button_text = ?, button_link = ?, image_filename = ?, updated_at = ?
		 WHERE id = ?`,
		s.Title, s.Subtitle, s.ButtonText, s.ButtonLink, s.ImageFilename, s.UpdatedAt, s.ID,
	)
}

// CountHeroSections returns the number of hero rows.
func (q *Queries) CountHeroSections(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM hero_section`)
}

// GetAboutSection returns the first about row.
func (q *Queries) GetAboutSection(ctx context.Context) (AboutSection, error) {
	var s AboutSection
	err := q.get(ctx, &s,
		`SELECT id, title, content, image_filename, updated_at FROM about_section ORDER BY id LIMIT 1`)
	return s, err
}

// CreateAboutSection inserts an about row and returns its id.
func (q *Queries) CreateAboutSection(ctx context.Context, s AboutSection) (int64, error) {
	return q.insert(ctx,
		`INSERT INTO about_section (title, content, image_filename, updated_at) VALUES (?, ?, ?, ?)`,
		s.Title, s.Content, s.ImageFilename, s.UpdatedAt,
	)
}

// UpdateAboutSection rewrites the about row identified by s.ID.
func (q *Queries) UpdateAboutSection(ctx context.Context, s AboutSection) error {
	return q.execAffecting(ctx,
		`UPDATE about_section SET title = ?, content = ?, image_filename = ?, updated_at = ? WHERE id = ?`,
		s.Title, s.Content, s.ImageFilename, s.UpdatedAt, s.ID,
	)
}

// CountAboutSections returns the number of about rows.
func (q *Queries) CountAboutSections(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM about_section`)
}

// GetFooterSection returns the first footer row.
func (q *Queries) GetFooterSection(ctx context.Context) (FooterSection, error) {
	var s FooterSection
	err := q.get(ctx, &s,
		`SELECT id, description, address, phone, email, facebook_url, instagram_url, copyright_text, image_filename, updated_at
		 FROM footer_section ORDER BY id LIMIT 1`)
	return s, err
}

// CreateFooterSection inserts a footer row and returns its id.
func (q *Queries) CreateFooterSection(ctx context.Context, s FooterSection) (int64, error) {
	return q.insert(ctx,
		`INSERT INTO footer_section (description, address, phone, email, facebook_url, instagram_url, copyright_text, image_filename, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Description, s.Address, s.Phone, s.Email, s.FacebookURL, s.InstagramURL, s.CopyrightText, s.ImageFilename, s.UpdatedAt,
	)
}

// UpdateFooterSection rewrites the footer row identified by s.ID.
func (q *Queries) UpdateFooterSection(ctx context.Context, s FooterSection) error {
	return q.execAffecting(ctx,
		`UPDATE footer_section SET description = ?, address = ?, phone = ?, email = ?, facebook_url = ?, instagram_url = ?,
		 copyright_text = ?, image_filename = ?, updated_at = ? WHERE id = ?`,
		s.Description, s.Address, s.Phone, s.Email, s.FacebookURL, s.InstagramURL, s.CopyrightText, s.ImageFilename, s.UpdatedAt, s.ID,
	)
}
