// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// AdminUser is the single administrator credential.
type AdminUser struct {
	ID           int64        `db:"id"`
	Username     string       `db:"username"`
	PasswordHash string       `db:"password_hash"`
	CreatedAt    time.Time    `db:"created_at"`
	LastLoginAt  sql.NullTime `db:"last_login_at"`
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// School is a partner school shown on the landing page.
type School struct {
	ID           int64          `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Description  string         `db:"description" json:"description"`
	Address      string         `db:"address" json:"address"`
	WebsiteURL   string         `db:"website_url" json:"website_url"`
	LogoFilename sql.NullString `db:"logo_filename" json:"logo_filename"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Event is a dated event with any number of images.
// ImageFilenames holds the JSON-encoded list of stored filenames.
type Event struct {
	ID             int64     `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	EventDate      string    `db:"event_date" json:"event_date"`
	Location       string    `db:"location" json:"location"`
	ImageFilenames string    `db:"image_filenames" json:"image_filenames"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// TeamMember is a person shown in the team section.
type TeamMember struct {
	ID            int64          `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Position      string         `db:"position" json:"position"`
	Bio           string         `db:"bio" json:"bio"`
	Email         string         `db:"email" json:"email"`
	PhotoFilename sql.NullString `db:"photo_filename" json:"photo_filename"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// HeroSection is the banner at the top of the landing page.
type HeroSection struct {
	ID            int64          `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Subtitle      string         `db:"subtitle" json:"subtitle"`
	ButtonText    string         `db:"button_text" json:"button_text"`
	ButtonLink    string         `db:"button_link" json:"button_link"`
	ImageFilename sql.NullString `db:"image_filename" json:"image_filename"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// AboutSection holds the Markdown "about us" block.
type AboutSection struct {
	ID            int64          `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Content       string         `db:"content" json:"content"`
	ImageFilename sql.NullString `db:"image_filename" json:"image_filename"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// FooterSection holds contact details and the footer logo.
type FooterSection struct {
	ID            int64          `db:"id" json:"id"`
	Description   string         `db:"description" json:"description"`
	Address       string         `db:"address" json:"address"`
	Phone         string         `db:"phone" json:"phone"`
	Email         string         `db:"email" json:"email"`
	FacebookURL   string         `db:"facebook_url" json:"facebook_url"`
	InstagramURL  string         `db:"instagram_url" json:"instagram_url"`
	CopyrightText string         `db:"copyright_text" json:"copyright_text"`
	ImageFilename sql.NullString `db:"image_filename" json:"image_filename"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
