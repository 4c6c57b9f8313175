// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/olegiv/olanding/internal/store"
)

// RecentMessagesLimit is how many messages the dashboard lists.
const RecentMessagesLimit = 5

// DashboardStats are the counters on the admin start page.
type DashboardStats struct {
	Messages       int64
	UnreadMessages int64
	Schools        int64
	Events         int64
	TeamMembers    int64
	RecentMessages []store.ContactMessage
}

// Dashboard collects DashboardStats.
type Dashboard struct {
	queries *store.Queries
}

// NewDashboard creates a Dashboard.
func NewDashboard(q *store.Queries) *Dashboard {
	return &Dashboard{queries: q}
}

// Stats gathers all counters.
func (d *Dashboard) Stats(ctx context.Context) (DashboardStats, error) {
	var st DashboardStats
	counters := []struct {
		name string
		dst  *int64
		fn   func(context.Context) (int64, error)
	}{
		{"messages", &st.Messages, d.queries.CountContactMessages},
		{"unread messages", &st.UnreadMessages, d.queries.CountUnreadContactMessages},
		{"schools", &st.Schools, d.queries.CountSchools},
		{"events", &st.Events, d.queries.CountEvents},
		{"team members", &st.TeamMembers, d.queries.CountTeamMembers},
	}
	for _, c := range counters {
		n, err := c.fn(ctx)
		if err != nil {
			return st, fmt.Errorf("counting %s: %w", c.name, err)
		}
		*c.dst = n
	}

	recent, err := d.queries.ListRecentContactMessages(ctx, RecentMessagesLimit)
	if err != nil {
		return st, fmt.Errorf("listing recent messages: %w", err)
	}
	st.RecentMessages = recent
	return st, nil
}
