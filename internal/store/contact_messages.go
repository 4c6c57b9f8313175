// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const contactMessageColumns = `id, name, email, message, is_read, created_at`

// CreateContactMessageParams holds the values for CreateContactMessage.
type CreateContactMessageParams struct {
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

// CreateContactMessage stores a new unread message and returns its id.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (int64, error) {
	return q.insert(ctx,
		`INSERT INTO contact_messages (name, email, message, is_read, created_at) VALUES (?, ?, ?, 0, ?)`,
		arg.Name, arg.Email, arg.Message, arg.CreatedAt,
	)
}

// GetContactMessage returns a single message.
func (q *Queries) GetContactMessage(ctx context.Context, id int64) (ContactMessage, error) {
	var m ContactMessage
	err := q.get(ctx, &m, `SELECT `+contactMessageColumns+` FROM contact_messages WHERE id = ?`, id)
	return m, err
}

// ListContactMessages returns all messages, newest first.
func (q *Queries) ListContactMessages(ctx context.Context) ([]ContactMessage, error) {
	var items []ContactMessage
	err := q.selectAll(ctx, &items,
		`SELECT `+contactMessageColumns+` FROM contact_messages ORDER BY created_at DESC, id DESC`)
	return items, err
}

// ListRecentContactMessages returns the newest messages up to limit.
func (q *Queries) ListRecentContactMessages(ctx context.Context, limit int64) ([]ContactMessage, error) {
	var items []ContactMessage
	err := q.selectAll(ctx, &items,
		`SELECT `+contactMessageColumns+` FROM contact_messages ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	return items, err
}

// SetContactMessageReadParams holds the values for SetContactMessageRead.
type SetContactMessageReadParams struct {
	IsRead bool
	ID     int64
}

// SetContactMessageRead sets the read flag. Returns sql.ErrNoRows if the message does not exist.
func (q *Queries) SetContactMessageRead(ctx context.Context, arg SetContactMessageReadParams) error {
	return q.execAffecting(ctx, `UPDATE contact_messages SET is_read = ? WHERE id = ?`, arg.IsRead, arg.ID)
}

// MarkContactMessageReadIfUnread flips an unread message to read.
// Returns true only when a row actually changed.
func (q *Queries) MarkContactMessageReadIfUnread(ctx context.Context, id int64) (bool, error) {
	res, err := q.exec(ctx, `UPDATE contact_messages SET is_read = 1 WHERE id = ? AND is_read = 0`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteContactMessage removes a message. Returns sql.ErrNoRows if it does not exist.
func (q *Queries) DeleteContactMessage(ctx context.Context, id int64) error {
	return q.execAffecting(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
}

// CountContactMessages returns the total number of messages.
func (q *Queries) CountContactMessages(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM contact_messages`)
}

// CountUnreadContactMessages returns the number of unread messages.
func (q *Queries) CountUnreadContactMessages(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM contact_messages WHERE is_read = 0`)
}
