// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store is the JSON-file-backed document store for categories,
// tags, and posts. All mutations flow through a single worker goroutine:
// each one re-reads the persisted document, applies its change, and
// replaces the whole file before the next mutation runs. Reads bypass
// the queue and observe the last fully committed write.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"jotpress/internal/classify"
	"jotpress/internal/models"
	"jotpress/internal/slug"
	"jotpress/internal/tags"
)

// Store owns one backing file. Construct with Open and release with
// Close. Multiple isolated stores may coexist (each with its own file),
// but a single file must have a single owning Store process-wide.
type Store struct {
	path string

	jobs chan func()
	quit chan struct{}
	done chan struct{}

	closeOnce sync.Once
}

// Open prepares the backing file (creating it with the initial state
// when missing) and starts the mutation worker.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDocument(path, initialDocument()); err != nil {
			return nil, fmt.Errorf("initialize storage: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat storage: %w", err)
	}

	s := &Store{
		path: path,
		jobs: make(chan func()),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// run drains the mutation queue one job at a time, in submission order.
func (s *Store) run() {
	defer close(s.done)
	for {
		select {
		case job := <-s.jobs:
			job()
		case <-s.quit:
			return
		}
	}
}

// Close stops the mutation worker. The mutation currently executing
// finishes; later submissions receive ErrClosed.
func (s *Store) Close() error {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// mutate queues fn behind all previously submitted mutations. When its
// turn comes the worker reads the current document, applies fn, and
// writes the whole document back. An error from fn skips the write and
// is reported to this caller only; the queue moves on to the next job.
// The context covers waiting for a queue slot and for the result, not
// the mutation body itself.
func (s *Store) mutate(ctx context.Context, fn func(doc *document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	errc := make(chan error, 1)
	job := func() {
		doc, err := readDocument(s.path)
		if err != nil {
			errc <- err
			return
		}
		if err := fn(doc); err != nil {
			errc <- err
			return
		}
		errc <- writeDocument(s.path, doc)
	}

	select {
	case s.jobs <- job:
	case <-s.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-errc:
		return err
	case <-s.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CreatePostInput describes a post-creation request. TagNames may carry
// duplicates and "#" prefixes; they are normalized before use. When
// AutoClassify is set, CategoryID is ignored and the classifier picks
// the category from the tags and content.
type CreatePostInput struct {
	Title        string
	Content      string
	CategoryID   int
	TagNames     []string
	Source       string
	AutoClassify bool
}

// PostResult is the outcome of CreatePost: the stored post plus its
// resolved category and tag records.
type PostResult struct {
	Post     models.Post     `json:"post"`
	Category models.Category `json:"category"`
	Tags     []models.Tag    `json:"tags"`
}

// CreatePost validates the input, then atomically creates any missing
// tags, resolves the category, and persists the new post.
func (s *Store) CreatePost(ctx context.Context, in CreatePostInput) (*PostResult, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "Title is required"}
	}
	if content == "" {
		return nil, &ValidationError{Field: "content", Message: "Content is required"}
	}

	names := tags.NormalizeNames(in.TagNames)
	source := in.Source
	if source == "" {
		source = models.SourceAdmin
	}

	var out PostResult
	err := s.mutate(ctx, func(doc *document) error {
		tagRecords := ensureTags(doc, names)

		var category *models.Category
		switch {
		case in.AutoClassify:
			category = classify.Pick(names, content, doc.Categories)
			if category == nil {
				category = ensureDefaultCategory(doc)
			}
		case in.CategoryID != 0:
			category = findCategoryByID(doc, in.CategoryID)
			if category == nil {
				category = ensureDefaultCategory(doc)
			}
		default:
			category = ensureDefaultCategory(doc)
		}

		tagIDs := make([]int, 0, len(tagRecords))
		for _, tag := range tagRecords {
			tagIDs = append(tagIDs, tag.ID)
		}

		now := time.Now().UTC()
		post := models.Post{
			ID:         doc.Meta.NextPostID,
			Title:      title,
			Content:    content,
			CategoryID: category.ID,
			TagIDs:     tagIDs,
			CreatedAt:  now,
			UpdatedAt:  now,
			Source:     source,
		}
		doc.Meta.NextPostID++
		doc.Posts = append(doc.Posts, post)

		out = PostResult{Post: post, Category: *category, Tags: tagRecords}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategoryInput describes a category-creation request. Slug is
// optional; when empty it derives from Name. Keywords are normalized
// (lowercased, deduplicated) before storage.
type CreateCategoryInput struct {
	Name     string
	Slug     string
	Keywords []string
}

// CreateCategory validates the input and persists a new category with a
// store-unique slug.
func (s *Store) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "Category name is required"}
	}
	keywords := tags.NormalizeKeywords(in.Keywords)

	var out models.Category
	err := s.mutate(ctx, func(doc *document) error {
		candidate := slug.Generate(in.Slug)
		if candidate == "" {
			candidate = slug.Generate(name)
		}
		if candidate == "" {
			candidate = fmt.Sprintf("category-%d", doc.Meta.NextCategoryID)
		}
		for categorySlugTaken(doc, candidate) {
			candidate = fmt.Sprintf("%s-%d", candidate, doc.Meta.NextCategoryID)
		}

		category := models.Category{
			ID:       doc.Meta.NextCategoryID,
			Name:     name,
			Slug:     candidate,
			Keywords: keywords,
		}
		doc.Meta.NextCategoryID++
		doc.Categories = append(doc.Categories, category)

		out = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategoryKeywords replaces the keyword list of an existing
// category. The keywords are normalized before storage.
func (s *Store) UpdateCategoryKeywords(ctx context.Context, id int, keywords []string) (*models.Category, error) {
	normalized := tags.NormalizeKeywords(keywords)

	var out models.Category
	err := s.mutate(ctx, func(doc *document) error {
		category := findCategoryByID(doc, id)
		if category == nil {
			return fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		category.Keywords = normalized
		out = *category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ensureTags resolves each name to a tag record, creating missing tags.
// Results are deduplicated by ID.
func ensureTags(doc *document, names []string) []models.Tag {
	seen := make(map[int]struct{}, len(names))
	out := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag := ensureTag(doc, name)
		if tag == nil {
			continue
		}
		if _, ok := seen[tag.ID]; ok {
			continue
		}
		seen[tag.ID] = struct{}{}
		out = append(out, *tag)
	}
	return out
}

// ensureTag finds a tag by case-insensitive name match, creating it with
// a store-unique slug when absent. Slug collisions append the current
// tag counter until the candidate is free.
func ensureTag(doc *document, name string) *models.Tag {
	lookup := strings.TrimSpace(name)
	if lookup == "" {
		return nil
	}
	for i := range doc.Tags {
		if strings.EqualFold(doc.Tags[i].Name, lookup) {
			return &doc.Tags[i]
		}
	}

	candidate := slug.Generate(lookup)
	if candidate == "" {
		candidate = fmt.Sprintf("tag-%d", doc.Meta.NextTagID)
	}
	for tagSlugTaken(doc, candidate) {
		candidate = fmt.Sprintf("%s-%d", candidate, doc.Meta.NextTagID)
	}

	doc.Tags = append(doc.Tags, models.Tag{
		ID:   doc.Meta.NextTagID,
		Name: lookup,
		Slug: candidate,
	})
	doc.Meta.NextTagID++
	return &doc.Tags[len(doc.Tags)-1]
}

func findCategoryByID(doc *document, id int) *models.Category {
	for i := range doc.Categories {
		if doc.Categories[i].ID == id {
			return &doc.Categories[i]
		}
	}
	return nil
}

func categorySlugTaken(doc *document, candidate string) bool {
	for i := range doc.Categories {
		if doc.Categories[i].Slug == candidate {
			return true
		}
	}
	return false
}

func tagSlugTaken(doc *document, candidate string) bool {
	for i := range doc.Tags {
		if doc.Tags[i].Slug == candidate {
			return true
		}
	}
	return false
}
