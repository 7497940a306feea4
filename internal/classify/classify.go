// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package classify assigns a category to free-form content using an
// ordered rule cascade over tag names and category keywords.
package classify

import (
	"strings"

	"jotpress/internal/models"
	"jotpress/internal/slug"
)

// Pick returns the first category matched by the rule cascade, or nil
// when no rule matches (the caller substitutes the default category).
//
// Each rule is evaluated against every category before the next rule
// runs, so tag-derived signals always beat content-substring signals,
// and earlier-declared categories win ties within a rule:
//
//  1. a tag slugifies to an existing category slug
//  2. a category's slugified name appears among the tags
//  3. a category keyword appears among the tags
//  4. a category keyword appears as a substring of the content
func Pick(tagNames []string, content string, categories []models.Category) *models.Category {
	loweredTags := make([]string, len(tagNames))
	for i, tag := range tagNames {
		loweredTags[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	loweredContent := strings.ToLower(content)

	for _, tag := range loweredTags {
		tagSlug := slug.Generate(tag)
		if tagSlug == "" {
			continue
		}
		for i := range categories {
			if categories[i].Slug == tagSlug {
				return &categories[i]
			}
		}
	}

	for i := range categories {
		nameSlug := slug.Generate(categories[i].Name)
		if nameSlug != "" && containsString(loweredTags, nameSlug) {
			return &categories[i]
		}
	}

	for i := range categories {
		for _, keyword := range categories[i].Keywords {
			if containsString(loweredTags, strings.ToLower(keyword)) {
				return &categories[i]
			}
		}
	}

	for i := range categories {
		for _, keyword := range categories[i].Keywords {
			keyword = strings.ToLower(keyword)
			if keyword != "" && strings.Contains(loweredContent, keyword) {
				return &categories[i]
			}
		}
	}

	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
