// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/olanding/internal/cache"
	"github.com/olegiv/olanding/internal/store"
)

const landingCacheKey = "landing:page"

// Landing is everything the public page shows. Missing sections are nil.
type Landing struct {
	Hero      *store.HeroSection   `json:"hero"`
	About     *store.AboutSection  `json:"about"`
	AboutHTML template.HTML        `json:"about_html"`
	Footer    *store.FooterSection `json:"footer"`
	Schools   []store.School       `json:"schools"`
	Events    []EventView          `json:"events"`
	Team      []store.TeamMember   `json:"team"`
}

// LandingService assembles the public page and caches the result until an
// admin change invalidates it.
type LandingService struct {
	queries  *store.Queries
	cache    *cache.TypedCache[Landing]
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	logger   *slog.Logger
}

// NewLandingService creates a LandingService. c may be nil to disable caching.
func NewLandingService(q *store.Queries, c cache.Cache, ttl time.Duration, logger *slog.Logger) *LandingService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &LandingService{
		queries:  q,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   bluemonday.UGCPolicy(),
		logger:   logger,
	}
	if c != nil {
		s.cache = cache.NewTypedCache[Landing](c, ttl)
	}
	return s
}

// Load returns the landing page content, from cache when possible.
func (s *LandingService) Load(ctx context.Context) (*Landing, error) {
	if s.cache == nil {
		return s.build(ctx)
	}
	return s.cache.GetOrLoad(ctx, landingCacheKey, s.build)
}

// Invalidate drops the cached page.
func (s *LandingService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, landingCacheKey); err != nil {
		s.logger.Warn("failed to invalidate landing cache", "error", err)
	}
}

// RenderMarkdown converts Markdown to sanitized HTML.
func (s *LandingService) RenderMarkdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(s.policy.SanitizeBytes(buf.Bytes())), nil // #nosec G203 -- sanitized by bluemonday
}

func (s *LandingService) build(ctx context.Context) (*Landing, error) {
	var l Landing
	var err error

	if l.Hero, err = optional(s.queries.GetHeroSection(ctx)); err != nil {
		return nil, fmt.Errorf("loading hero: %w", err)
	}
	if l.About, err = optional(s.queries.GetAboutSection(ctx)); err != nil {
		return nil, fmt.Errorf("loading about: %w", err)
	}
	if l.Footer, err = optional(s.queries.GetFooterSection(ctx)); err != nil {
		return nil, fmt.Errorf("loading footer: %w", err)
	}
	if l.About != nil {
		if l.AboutHTML, err = s.RenderMarkdown(l.About.Content); err != nil {
			return nil, err
		}
	}

	if l.Schools, err = s.queries.ListActiveSchools(ctx); err != nil {
		return nil, fmt.Errorf("loading schools: %w", err)
	}
	events, err := s.queries.ListActiveEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	l.Events = eventViews(events)
	if l.Team, err = s.queries.ListActiveTeamMembers(ctx); err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}

	return &l, nil
}

// optional turns a sql.ErrNoRows result into a nil pointer.
func optional[T any](row T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
