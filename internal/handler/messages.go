// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"

	"github.com/olegiv/olanding/internal/render"
	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/store"
)

// messageList is the Data of the inbox page.
type messageList struct {
	Messages []store.ContactMessage
	Stats    service.InboxStats
}

// MessagesHandler serves the contact message inbox.
type MessagesHandler struct {
	base
	inbox *service.Inbox
}

// List renders all messages, newest first.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs, stats, err := h.inbox.List(r.Context())
	if err != nil {
		h.logAndInternalError(w, r, "failed to list messages", "error", err)
		return
	}
	h.renderPage(w, r, "admin/messages", render.TemplateData{
		Title: "Messages",
		Nav:   "messages",
		Data:  messageList{Messages: msgs, Stats: stats},
	})
}

// View renders one message. Opening an unread message marks it read.
func (h *MessagesHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r, redirectMessages, "Message")
	if !ok {
		return
	}
	msg, err := h.inbox.View(r.Context(), id)
	if h.handleLookupError(w, r, err, redirectMessages, "Message", id) {
		return
	}
	h.renderPage(w, r, "admin/message_view", render.TemplateData{
		Title: "Message from " + msg.Name,
		Nav:   "messages",
		Data:  msg,
	})
}

// Delete removes a message.
func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.inbox.Delete, "Message deleted successfully")
}

// MarkRead marks a message read.
func (h *MessagesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.inbox.MarkRead, "Message marked as read")
}

// MarkUnread marks a message unread.
func (h *MessagesHandler) MarkUnread(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.inbox.MarkUnread, "Message marked as unread")
}

func (h *MessagesHandler) apply(w http.ResponseWriter, r *http.Request, op func(context.Context, int64) error, success string) {
	id, ok := h.requireID(w, r, redirectMessages, "Message")
	if !ok {
		return
	}
	if h.handleLookupError(w, r, op(r.Context(), id), redirectMessages, "Message", id) {
		return
	}
	h.flashSuccess(w, r, redirectMessages, success)
}
