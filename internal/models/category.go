// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Reserved fallback category. It always exists in a store and receives
// every post that cannot be classified anywhere else.
const (
	DefaultCategoryName = "未分类"
	DefaultCategorySlug = "uncategorized"
)

// Category groups posts and carries the keyword list that drives
// auto-classification. Slugs are unique across the store; keywords are
// stored lowercased and deduplicated.
type Category struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Keywords []string `json:"keywords"`
}

// IsDefault reports whether this is the reserved fallback category.
func (c *Category) IsDefault() bool {
	return c.Slug == DefaultCategorySlug
}
