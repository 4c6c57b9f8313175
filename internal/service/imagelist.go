// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"encoding/json"
	"strings"

	"github.com/olegiv/olanding/internal/util"
)

// ParseImageList decodes an event's stored image list. It accepts a JSON
// array of strings as well as the older single-quoted form
// "['a.png', 'b.png']". Stray quotes and brackets around entries are
// removed, entries that are not plain file names are dropped, and anything
// unparseable yields an empty list. It never fails.
func ParseImageList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return []string{}
	}

	var decoded []string
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		return cleanImageNames(decoded)
	}

	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return []string{}
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	return cleanImageNames(strings.Split(inner, ","))
}

func cleanImageNames(entries []string) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := strings.Trim(strings.TrimSpace(entry), `'"[] `)
		if util.IsPlainFilename(name) {
			names = append(names, name)
		}
	}
	return names
}

// EncodeImageList serialises names as a JSON array. nil encodes as "[]".
func EncodeImageList(names []string) string {
	if len(names) == 0 {
		return "[]"
	}
	data, err := json.Marshal(names)
	if err != nil {
		// []string always marshals
		return "[]"
	}
	return string(data)
}

// mergeImageList returns (existing - removed) + added, keeping order and
// dropping duplicates, plus the entries that were actually removed.
func mergeImageList(existing, removed, added []string) (kept, dropped []string) {
	drop := make(map[string]bool, len(removed))
	for _, name := range removed {
		drop[name] = true
	}

	seen := make(map[string]bool, len(existing)+len(added))
	kept = make([]string, 0, len(existing)+len(added))
	for _, name := range existing {
		if drop[name] {
			dropped = append(dropped, name)
			continue
		}
		if !seen[name] {
			seen[name] = true
			kept = append(kept, name)
		}
	}
	for _, name := range added {
		if !seen[name] {
			seen[name] = true
			kept = append(kept, name)
		}
	}
	return kept, dropped
}
