// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseImageList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"whitespace", "   ", []string{}},
		{"empty json", "[]", []string{}},
		{"json", `["a.png","b.jpg"]`, []string{"a.png", "b.jpg"}},
		{"legacy quoted", "['a.png', 'b.png']", []string{"a.png", "b.png"}},
		{"legacy double quoted", `["a.png", 'b.png']`, []string{"a.png", "b.png"}},
		{"stray quotes in json", `["'a.png'", "\"b.png\""]`, []string{"a.png", "b.png"}},
		{"legacy single", "['only.webp']", []string{"only.webp"}},
		{"legacy trailing comma", "['a.png', ]", []string{"a.png"}},
		{"nested brackets", "[['a.png']]", []string{"a.png"}},
		{"not a list", "a.png", []string{}},
		{"json object", `{"a":"b.png"}`, []string{}},
		{"unterminated", "['a.png'", []string{}},
		{"path entries dropped", `["../etc/passwd","ok.png","x/y.png"]`, []string{"ok.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseImageList(tt.raw))
		})
	}
}

func TestEncodeImageList(t *testing.T) {
	assert.Equal(t, "[]", EncodeImageList(nil))
	assert.Equal(t, "[]", EncodeImageList([]string{}))
	assert.Equal(t, `["a.png","b.png"]`, EncodeImageList([]string{"a.png", "b.png"}))

	// What we write, we read back.
	names := []string{"20260101_120000_x.png", "20260101_120001_y.webp"}
	assert.Equal(t, names, ParseImageList(EncodeImageList(names)))
}

func TestMergeImageList(t *testing.T) {
	kept, dropped := mergeImageList(
		[]string{"a.png", "b.png", "c.png"},
		[]string{"b.png", "missing.png"},
		[]string{"d.png", "a.png"},
	)
	assert.Equal(t, []string{"a.png", "c.png", "d.png"}, kept)
	assert.Equal(t, []string{"b.png"}, dropped)

	kept, dropped = mergeImageList(nil, nil, nil)
	assert.Empty(t, kept)
	assert.Empty(t, dropped)
}
