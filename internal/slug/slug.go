// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// invalidChars matches anything outside lowercase latin letters, digits,
	// CJK ideographs, whitespace, hyphen, and underscore.
	invalidChars = regexp.MustCompile(`[^a-z0-9\x{4e00}-\x{9fa5}\s_-]`)
	// whitespaceRun matches one or more consecutive whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
// CJK ideographs are preserved so Chinese titles keep readable slugs.
// Empty or all-punctuation input yields an empty string; callers are
// expected to supply their own fallback in that case.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = stripDiacritics(result)
	result = invalidChars.ReplaceAllString(result, "")
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// stripDiacritics decomposes the string (NFKD) and drops combining marks,
// so "café" becomes "cafe". Full-width punctuation decomposes to its
// ASCII form as a side effect, which the caller's character filter then
// handles like any other punctuation.
func stripDiacritics(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
