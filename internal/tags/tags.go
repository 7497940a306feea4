// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tags parses and normalizes tag names, mines hashtags out of
// free-form content, and normalizes category keyword lists.
package tags

import (
	"regexp"
	"strings"
)

var (
	// separatorRun splits raw tag or keyword input on commas and whitespace.
	separatorRun = regexp.MustCompile(`[,\s]+`)
	// hashtagPattern matches a "#" followed by letters in any script,
	// digits, underscore, or hyphen.
	hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_-]+)`)
)

// ParseInput splits a free-form tag string into individual tag names.
// Both the ASCII comma and the full-width comma (，) act as separators,
// as does any whitespace. A leading "#" on a token is dropped. Order is
// preserved and no deduplication happens at this stage.
func ParseInput(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, "，", ",")
	parts := separatorRun.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimPrefix(strings.TrimSpace(part), "#")
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// NormalizeNames strips "#" prefixes, trims each name, and deduplicates
// case-insensitively while keeping the first-seen original casing.
// Empty names are dropped.
func NormalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		cleaned := strings.TrimPrefix(strings.TrimSpace(name), "#")
		key := strings.ToLower(cleaned)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}

// ExtractHashtags scans content for "#tag" tokens and returns the
// lowercased tag names, deduplicated, in order of first appearance.
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := strings.ToLower(m[1])
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// SplitKeywords splits a raw keyword string the same way ParseInput
// splits tags: on ASCII commas, full-width commas, and whitespace.
func SplitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, "，", ",")
	parts := separatorRun.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// NormalizeKeywords trims, lowercases, and deduplicates a keyword list.
// Category keywords are stored lowercased; classification compares them
// against lowercased tag names and content. Always returns a non-nil
// slice so the persisted JSON stays an array.
func NormalizeKeywords(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		keyword := strings.ToLower(strings.TrimSpace(value))
		if keyword == "" {
			continue
		}
		if _, ok := seen[keyword]; ok {
			continue
		}
		seen[keyword] = struct{}{}
		out = append(out, keyword)
	}
	return out
}
