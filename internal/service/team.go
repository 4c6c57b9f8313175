// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/olanding/internal/store"
)

// TeamMemberInput is the team member form.
type TeamMemberInput struct {
	Name        string `form:"name" validate:"required,max=200"`
	Position    string `form:"position" validate:"required,max=200"`
	Bio         string `form:"bio" validate:"max=5000"`
	Email       string `form:"email" validate:"omitempty,email"`
	IsActive    bool   `form:"is_active"`
	RemovePhoto bool   `form:"remove_photo"`
}

func (in *TeamMemberInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Position = strings.TrimSpace(in.Position)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Email = strings.TrimSpace(in.Email)
}

// TeamService manages team members and their photos.
type TeamService struct {
	entityBase
}

// NewTeamService creates a TeamService.
func NewTeamService(d Deps) *TeamService {
	return &TeamService{entityBase: newEntityBase(d)}
}

func (s *TeamService) Create(ctx context.Context, in TeamMemberInput, photo *FileUpload) (int64, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return 0, err
	}

	photoName, err := s.saveOne(KindTeam, photo)
	if err != nil {
		return 0, err
	}

	now := s.now()
	id, err := s.queries.CreateTeamMember(ctx, store.CreateTeamMemberParams{
		Name:          in.Name,
		Position:      in.Position,
		Bio:           in.Bio,
		Email:         in.Email,
		PhotoFilename: photoName,
		IsActive:      in.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		s.uploads.Remove(KindTeam, photoName.String)
		return 0, fmt.Errorf("creating team member: %w", err)
	}

	s.logger.Info("team member created", "id", id, "name", in.Name)
	s.changed(ctx)
	return id, nil
}

func (s *TeamService) Get(ctx context.Context, id int64) (store.TeamMember, error) {
	m, err := s.queries.GetTeamMember(ctx, id)
	if err != nil {
		return m, notFound(err, "team member")
	}
	return m, nil
}

func (s *TeamService) List(ctx context.Context) ([]store.TeamMember, error) {
	members, err := s.queries.ListTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	return members, nil
}

func (s *TeamService) ListActive(ctx context.Context) ([]store.TeamMember, error) {
	members, err := s.queries.ListActiveTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active team members: %w", err)
	}
	return members, nil
}

func (s *TeamService) Update(ctx context.Context, id int64, in TeamMemberInput, photo *FileUpload) error {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	uploaded, err := s.saveOne(KindTeam, photo)
	if err != nil {
		return err
	}
	next, orphan := replaceSingle(current.PhotoFilename, uploaded, in.RemovePhoto)

	err = s.queries.UpdateTeamMember(ctx, store.UpdateTeamMemberParams{
		Name:          in.Name,
		Position:      in.Position,
		Bio:           in.Bio,
		Email:         in.Email,
		PhotoFilename: next,
		IsActive:      in.IsActive,
		UpdatedAt:     s.now(),
		ID:            id,
	})
	if err != nil {
		s.uploads.Remove(KindTeam, uploaded.String)
		return notFound(err, "updating team member")
	}

	s.uploads.Remove(KindTeam, orphan)
	s.logger.Info("team member updated", "id", id)
	s.changed(ctx)
	return nil
}

func (s *TeamService) Delete(ctx context.Context, id int64) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if m.PhotoFilename.Valid {
		s.uploads.Remove(KindTeam, m.PhotoFilename.String)
	}
	if err := s.queries.DeleteTeamMember(ctx, id); err != nil {
		return notFound(err, "deleting team member")
	}

	s.logger.Info("team member deleted", "id", id, "name", m.Name)
	s.changed(ctx)
	return nil
}

// ToggleActive flips is_active and returns the new value.
func (s *TeamService) ToggleActive(ctx context.Context, id int64) (bool, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	active := !m.IsActive
	err = s.queries.SetTeamMemberActive(ctx, store.SetTeamMemberActiveParams{IsActive: active, UpdatedAt: s.now(), ID: id})
	if err != nil {
		return false, notFound(err, "toggling team member")
	}

	s.changed(ctx)
	return active, nil
}
