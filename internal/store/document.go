// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// document.go defines the persisted JSON document and its file codec.
// The backing file is the whole unit of truth: it is always read and
// written in full, never patched in place.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"jotpress/internal/models"
)

// meta holds the per-entity ID counters. IDs are strictly increasing and
// never reused; there is no delete operation to hand them back.
type meta struct {
	NextCategoryID int `json:"nextCategoryId"`
	NextTagID      int `json:"nextTagId"`
	NextPostID     int `json:"nextPostId"`
}

// document is the complete persisted state.
type document struct {
	Categories []models.Category `json:"categories"`
	Tags       []models.Tag      `json:"tags"`
	Posts      []models.Post     `json:"posts"`
	Meta       meta              `json:"meta"`
}

// initialDocument returns the state a brand-new store starts from: the
// default category with ID 1 and empty collections.
func initialDocument() *document {
	doc := &document{
		Categories: []models.Category{},
		Tags:       []models.Tag{},
		Posts:      []models.Post{},
		Meta:       meta{NextCategoryID: 1, NextTagID: 1, NextPostID: 1},
	}
	ensureDefaultCategory(doc)
	return doc
}

// normalize repairs a freshly decoded document: nil collections become
// empty slices, counters never fall below 1, keyword and tag-ID lists
// stay non-nil so they round-trip as JSON arrays, and the default
// category is recreated if absent.
func (d *document) normalize() {
	if d.Categories == nil {
		d.Categories = []models.Category{}
	}
	if d.Tags == nil {
		d.Tags = []models.Tag{}
	}
	if d.Posts == nil {
		d.Posts = []models.Post{}
	}
	if d.Meta.NextCategoryID < 1 {
		d.Meta.NextCategoryID = 1
	}
	if d.Meta.NextTagID < 1 {
		d.Meta.NextTagID = 1
	}
	if d.Meta.NextPostID < 1 {
		d.Meta.NextPostID = 1
	}
	for i := range d.Categories {
		if d.Categories[i].Keywords == nil {
			d.Categories[i].Keywords = []string{}
		}
	}
	for i := range d.Posts {
		if d.Posts[i].TagIDs == nil {
			d.Posts[i].TagIDs = []int{}
		}
	}
	ensureDefaultCategory(d)
}

// ensureDefaultCategory returns the reserved fallback category, creating
// it lazily when the document lacks one.
func ensureDefaultCategory(doc *document) *models.Category {
	for i := range doc.Categories {
		if doc.Categories[i].Slug == models.DefaultCategorySlug {
			return &doc.Categories[i]
		}
	}
	doc.Categories = append(doc.Categories, models.Category{
		ID:       doc.Meta.NextCategoryID,
		Name:     models.DefaultCategoryName,
		Slug:     models.DefaultCategorySlug,
		Keywords: []string{},
	})
	doc.Meta.NextCategoryID++
	return &doc.Categories[len(doc.Categories)-1]
}

// readDocument loads and normalizes the backing file. A missing or empty
// file yields the initial state. Content that fails to parse also resets
// to the initial state: the store favors availability over preserving a
// file some other program corrupted. The reset is logged because it
// silently discards data.
func readDocument(path string) (*document, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return initialDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage: %w", err)
	}
	if len(raw) == 0 {
		return initialDocument(), nil
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Warn("storage file corrupt, resetting to defaults",
			"path", path,
			"error", err,
		)
		return initialDocument(), nil
	}
	doc.normalize()
	return &doc, nil
}

// writeDocument replaces the backing file with the full document state.
// It writes to a temp file in the same directory and renames it over the
// target, so readers never observe a partially written file.
func writeDocument(path string, doc *document) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".storage-*.json")
	if err != nil {
		return fmt.Errorf("create temp storage: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp storage: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace storage: %w", err)
	}
	return nil
}
