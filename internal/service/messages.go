// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/olanding/internal/store"
)

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Message string `form:"message" validate:"required,max=5000"`
}

// InboxStats summarises the inbox.
type InboxStats struct {
	Total  int
	Unread int
	Read   int
	Today  int
}

// Inbox stores and manages contact form submissions.
type Inbox struct {
	queries *store.Queries
	policy  *bluemonday.Policy
	logger  *slog.Logger
	now     func() time.Time
}

// NewInbox creates an Inbox.
func NewInbox(d Deps) *Inbox {
	b := newEntityBase(d)
	return &Inbox{
		queries: b.queries,
		policy:  bluemonday.StrictPolicy(),
		logger:  b.logger,
		now:     b.now,
	}
}

// Submit validates and stores a contact message. Fields are stored as
// submitted apart from surrounding whitespace; a message consisting only
// of markup is rejected.
func (i *Inbox) Submit(ctx context.Context, in ContactInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateStruct(in); err != nil {
		return 0, err
	}
	if i.isBlank(in.Message) {
		return 0, invalid("message", "Message is required")
	}

	id, err := i.queries.CreateContactMessage(ctx, store.CreateContactMessageParams{
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: i.now(),
	})
	if err != nil {
		return 0, fmt.Errorf("storing contact message: %w", err)
	}

	i.logger.Info("contact message received", "id", id, "email", in.Email)
	return id, nil
}

// isBlank reports whether s has no text left once markup is removed.
func (i *Inbox) isBlank(s string) bool {
	return strings.TrimSpace(html.UnescapeString(i.policy.Sanitize(s))) == ""
}

// List returns every message, newest first, together with inbox stats.
func (i *Inbox) List(ctx context.Context) ([]store.ContactMessage, InboxStats, error) {
	msgs, err := i.queries.ListContactMessages(ctx)
	if err != nil {
		return nil, InboxStats{}, fmt.Errorf("listing contact messages: %w", err)
	}

	stats := InboxStats{Total: len(msgs)}
	y, m, d := i.now().Date()
	for _, msg := range msgs {
		if msg.IsRead {
			stats.Read++
		} else {
			stats.Unread++
		}
		if my, mm, md := msg.CreatedAt.In(i.now().Location()).Date(); my == y && mm == m && md == d {
			stats.Today++
		}
	}
	return msgs, stats, nil
}

// Recent returns the newest limit messages.
func (i *Inbox) Recent(ctx context.Context, limit int) ([]store.ContactMessage, error) {
	msgs, err := i.queries.ListRecentContactMessages(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing recent contact messages: %w", err)
	}
	return msgs, nil
}

// View returns a message and marks it read if it was unread. Viewing an
// already read message writes nothing.
func (i *Inbox) View(ctx context.Context, id int64) (store.ContactMessage, error) {
	msg, err := i.queries.GetContactMessage(ctx, id)
	if err != nil {
		return msg, notFound(err, "contact message")
	}
	if msg.IsRead {
		return msg, nil
	}

	changed, err := i.queries.MarkContactMessageReadIfUnread(ctx, id)
	if err != nil {
		return msg, fmt.Errorf("marking contact message read: %w", err)
	}
	if changed {
		i.logger.Debug("contact message marked read on view", "id", id)
	}
	msg.IsRead = true
	return msg, nil
}

// MarkRead sets is_read. Repeating it is harmless.
func (i *Inbox) MarkRead(ctx context.Context, id int64) error {
	return i.setRead(ctx, id, true)
}

// MarkUnread clears is_read. Repeating it is harmless.
func (i *Inbox) MarkUnread(ctx context.Context, id int64) error {
	return i.setRead(ctx, id, false)
}

func (i *Inbox) setRead(ctx context.Context, id int64, read bool) error {
	err := i.queries.SetContactMessageRead(ctx, store.SetContactMessageReadParams{IsRead: read, ID: id})
	if err != nil {
		return notFound(err, "contact message")
	}
	return nil
}

// Delete removes a message.
func (i *Inbox) Delete(ctx context.Context, id int64) error {
	if err := i.queries.DeleteContactMessage(ctx, id); err != nil {
		return notFound(err, "contact message")
	}
	i.logger.Info("contact message deleted", "id", id)
	return nil
}

// UnreadCount returns the number of unread messages.
func (i *Inbox) UnreadCount(ctx context.Context) (int64, error) {
	n, err := i.queries.CountUnreadContactMessages(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting unread messages: %w", err)
	}
	return n, nil
}
