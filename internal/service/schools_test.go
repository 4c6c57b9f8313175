// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchoolService_LogoLifecycle(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSchoolService(env.deps)
	ctx := context.Background()

	id, err := svc.Create(ctx, SchoolInput{Name: "North School", IsActive: true}, pngUpload(t, "logo", "North Logo.png"))
	require.NoError(t, err)

	school, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, school.LogoFilename.Valid)
	oldLogo := school.LogoFilename.String
	assert.Equal(t, "20260314_093000_North_Logo.png", oldLogo)
	env.requireFile(t, KindSchools, oldLogo)

	err = svc.Update(ctx, id, SchoolInput{Name: "North School", IsActive: true}, pngUpload(t, "logo", "new.png"))
	require.NoError(t, err)

	school, err = svc.Get(ctx, id)
	require.NoError(t, err)
	newLogo := school.LogoFilename.String
	assert.Equal(t, "20260314_093000_new.png", newLogo)
	env.requireFile(t, KindSchools, newLogo)
	env.requireNoFile(t, KindSchools, oldLogo)

	require.NoError(t, svc.Delete(ctx, id))
	env.requireNoFile(t, KindSchools, newLogo)

	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchoolService_UpdateWithoutLogoKeepsFile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSchoolService(env.deps)
	ctx := context.Background()

	id, err := svc.Create(ctx, SchoolInput{Name: "A"}, pngUpload(t, "logo", "a.png"))
	require.NoError(t, err)
	before, err := svc.Get(ctx, id)
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, id, SchoolInput{Name: "B", WebsiteURL: "https://b.example"}, nil))

	after, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "B", after.Name)
	assert.Equal(t, before.LogoFilename, after.LogoFilename)
	env.requireFile(t, KindSchools, after.LogoFilename.String)

	require.NoError(t, svc.Update(ctx, id, SchoolInput{Name: "B", RemoveLogo: true}, nil))
	after, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, after.LogoFilename.Valid)
	env.requireNoFile(t, KindSchools, before.LogoFilename.String)
}

func TestSchoolService_ToggleTwiceIsIdentity(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSchoolService(env.deps)
	ctx := context.Background()

	id, err := svc.Create(ctx, SchoolInput{Name: "Toggle", Description: "desc", IsActive: true}, nil)
	require.NoError(t, err)
	before, err := svc.Get(ctx, id)
	require.NoError(t, err)

	active, err := svc.ToggleActive(ctx, id)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = svc.ToggleActive(ctx, id)
	require.NoError(t, err)
	assert.True(t, active)

	after, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.IsActive, after.IsActive)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.LogoFilename, after.LogoFilename)
}

func TestSchoolService_DeleteToleratesRemovalFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSchoolService(env.deps)
	ctx := context.Background()

	id, err := svc.Create(ctx, SchoolInput{Name: "Stuck"}, pngUpload(t, "logo", "stuck.png"))
	require.NoError(t, err)
	school, err := svc.Get(ctx, id)
	require.NoError(t, err)

	env.blockRemoval(t, KindSchools, school.LogoFilename.String)

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchoolService_NotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSchoolService(env.deps)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, 999), ErrNotFound)
	assert.ErrorIs(t, svc.Update(ctx, 999, SchoolInput{Name: "x"}, nil), ErrNotFound)
	_, err := svc.ToggleActive(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchoolService_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSchoolService(env.deps)

	_, err := svc.Create(context.Background(), SchoolInput{Name: " "}, nil)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)

	_, err = svc.Create(context.Background(), SchoolInput{Name: "x", WebsiteURL: "not a url"}, nil)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "website_url", verr.Field)
}

func TestSchoolService_ListActive(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSchoolService(env.deps)
	ctx := context.Background()

	_, err := svc.Create(ctx, SchoolInput{Name: "Visible", IsActive: true}, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, SchoolInput{Name: "Hidden"}, nil)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Visible", active[0].Name)
}
