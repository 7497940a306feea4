// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Post source values, recording which surface created a post.
const (
	SourceAdmin    = "admin"     // admin form submission
	SourceAdminAPI = "admin-api" // admin JSON API
	SourceAPI      = "api"       // bearer-token entries API
)

// Post is a stored content entry. CategoryID always references an
// existing category (the default one when nothing else resolves) and
// TagIDs are deduplicated references to existing tags.
type Post struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID int       `json:"categoryId"`
	TagIDs     []int     `json:"tagIds"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Source     string    `json:"source"`
}
