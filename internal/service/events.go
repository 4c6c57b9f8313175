// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/olanding/internal/store"
)

// EventInput is the event form. RemoveImages names stored images to drop.
type EventInput struct {
	Title        string   `form:"title" validate:"required,max=200"`
	Description  string   `form:"description" validate:"max=5000"`
	EventDate    string   `form:"event_date" validate:"omitempty,datetime=2006-01-02"`
	Location     string   `form:"location" validate:"max=300"`
	IsActive     bool     `form:"is_active"`
	RemoveImages []string `form:"remove_images"`
}

func (in *EventInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.EventDate = strings.TrimSpace(in.EventDate)
	in.Location = strings.TrimSpace(in.Location)
}

// EventView is an event with its image list decoded.
type EventView struct {
	store.Event
	Images []string
}

func newEventView(e store.Event) EventView {
	return EventView{Event: e, Images: ParseImageList(e.ImageFilenames)}
}

// EventService manages events and their image galleries.
type EventService struct {
	entityBase
}

// NewEventService creates an EventService.
func NewEventService(d Deps) *EventService {
	return &EventService{entityBase: newEntityBase(d)}
}

// Create validates in, stores every image and inserts the event.
func (s *EventService) Create(ctx context.Context, in EventInput, images []*FileUpload) (int64, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return 0, err
	}

	names, err := s.saveMany(KindEvents, images)
	if err != nil {
		return 0, err
	}

	now := s.now()
	id, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Title:          in.Title,
		Description:    in.Description,
		EventDate:      in.EventDate,
		Location:       in.Location,
		ImageFilenames: EncodeImageList(names),
		IsActive:       in.IsActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		s.uploads.RemoveAll(KindEvents, names)
		return 0, fmt.Errorf("creating event: %w", err)
	}

	s.logger.Info("event created", "id", id, "title", in.Title, "images", len(names))
	s.changed(ctx)
	return id, nil
}

// Get returns one event or ErrNotFound.
func (s *EventService) Get(ctx context.Context, id int64) (EventView, error) {
	e, err := s.queries.GetEvent(ctx, id)
	if err != nil {
		return EventView{}, notFound(err, "event")
	}
	return newEventView(e), nil
}

// List returns all events, newest first.
func (s *EventService) List(ctx context.Context) ([]EventView, error) {
	events, err := s.queries.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return eventViews(events), nil
}

// ListActive returns the events shown on the landing page.
func (s *EventService) ListActive(ctx context.Context) ([]EventView, error) {
	events, err := s.queries.ListActiveEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active events: %w", err)
	}
	return eventViews(events), nil
}

func eventViews(events []store.Event) []EventView {
	views := make([]EventView, len(events))
	for i, e := range events {
		views[i] = newEventView(e)
	}
	return views
}

// Update rewrites an event. The stored image list becomes
// (existing - in.RemoveImages) + added; dropped files are deleted once
// the row has been written.
func (s *EventService) Update(ctx context.Context, id int64, in EventInput, images []*FileUpload) error {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	added, err := s.saveMany(KindEvents, images)
	if err != nil {
		return err
	}
	kept, dropped := mergeImageList(current.Images, in.RemoveImages, added)

	err = s.queries.UpdateEvent(ctx, store.UpdateEventParams{
		Title:          in.Title,
		Description:    in.Description,
		EventDate:      in.EventDate,
		Location:       in.Location,
		ImageFilenames: EncodeImageList(kept),
		IsActive:       in.IsActive,
		UpdatedAt:      s.now(),
		ID:             id,
	})
	if err != nil {
		s.uploads.RemoveAll(KindEvents, added)
		return notFound(err, "updating event")
	}

	s.uploads.RemoveAll(KindEvents, dropped)
	s.logger.Info("event updated", "id", id, "added", len(added), "removed", len(dropped))
	s.changed(ctx)
	return nil
}

// Delete removes every image of the event (best-effort) and then the row.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.uploads.RemoveAll(KindEvents, e.Images)
	if err := s.queries.DeleteEvent(ctx, id); err != nil {
		return notFound(err, "deleting event")
	}

	s.logger.Info("event deleted", "id", id, "title", e.Title)
	s.changed(ctx)
	return nil
}

// ToggleActive flips is_active and returns the new value.
func (s *EventService) ToggleActive(ctx context.Context, id int64) (bool, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	active := !e.IsActive
	err = s.queries.SetEventActive(ctx, store.SetEventActiveParams{IsActive: active, UpdatedAt: s.now(), ID: id})
	if err != nil {
		return false, notFound(err, "toggling event")
	}

	s.changed(ctx)
	return active, nil
}
