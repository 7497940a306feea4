// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// queries.go is the read side of the store: hydrated projections built
// from a fresh snapshot of the backing file. Reads never touch the
// mutation queue, so they may run concurrently with each other and with
// an in-flight write; they always observe the last committed state.
package store

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"jotpress/internal/models"
)

// PostView is a post with its category and tag references hydrated.
type PostView struct {
	models.Post
	Category *models.Category `json:"category"`
	Tags     []models.Tag     `json:"tags"`
}

// Overview is the aggregated read view for the front page: every post
// newest-first, plus all categories and tags ordered by name.
type Overview struct {
	Posts      []PostView        `json:"posts"`
	Categories []models.Category `json:"categories"`
	Tags       []models.Tag      `json:"tags"`
}

// CategoryPosts is a category plus its posts, newest first.
type CategoryPosts struct {
	Category models.Category `json:"category"`
	Posts    []PostView      `json:"posts"`
}

// TagPosts is a tag plus its posts, newest first.
type TagPosts struct {
	Tag   models.Tag `json:"tag"`
	Posts []PostView `json:"posts"`
}

// newCollator orders names the way the site's Chinese front end expects.
func newCollator() *collate.Collator {
	return collate.New(language.MustParse("zh-Hans-CN"))
}

// Overview returns all posts (hydrated, newest first) together with
// categories and tags sorted by locale-aware name order.
func (s *Store) Overview() (*Overview, error) {
	doc, err := readDocument(s.path)
	if err != nil {
		return nil, err
	}

	categories := append([]models.Category(nil), doc.Categories...)
	tagList := append([]models.Tag(nil), doc.Tags...)

	col := newCollator()
	sort.SliceStable(categories, func(i, j int) bool {
		return col.CompareString(categories[i].Name, categories[j].Name) < 0
	})
	sort.SliceStable(tagList, func(i, j int) bool {
		return col.CompareString(tagList[i].Name, tagList[j].Name) < 0
	})

	return &Overview{
		Posts:      hydratePosts(doc, doc.Posts),
		Categories: categories,
		Tags:       tagList,
	}, nil
}

// CategoryWithPosts returns the category with the given slug and its
// posts. Returns nil, nil when the slug is unknown.
func (s *Store) CategoryWithPosts(slug string) (*CategoryPosts, error) {
	doc, err := readDocument(s.path)
	if err != nil {
		return nil, err
	}

	category := findCategoryBySlug(doc, slug)
	if category == nil {
		return nil, nil
	}

	matched := make([]models.Post, 0, len(doc.Posts))
	for _, post := range doc.Posts {
		if post.CategoryID == category.ID {
			matched = append(matched, post)
		}
	}

	return &CategoryPosts{
		Category: *category,
		Posts:    hydratePosts(doc, matched),
	}, nil
}

// TagWithPosts returns the tag with the given slug and its posts.
// Returns nil, nil when the slug is unknown.
func (s *Store) TagWithPosts(slug string) (*TagPosts, error) {
	doc, err := readDocument(s.path)
	if err != nil {
		return nil, err
	}

	var tag *models.Tag
	for i := range doc.Tags {
		if doc.Tags[i].Slug == slug {
			tag = &doc.Tags[i]
			break
		}
	}
	if tag == nil {
		return nil, nil
	}

	matched := make([]models.Post, 0, len(doc.Posts))
	for _, post := range doc.Posts {
		for _, id := range post.TagIDs {
			if id == tag.ID {
				matched = append(matched, post)
				break
			}
		}
	}

	return &TagPosts{
		Tag:   *tag,
		Posts: hydratePosts(doc, matched),
	}, nil
}

// PostWithRelations returns the post with the given ID, hydrated.
// Returns nil, nil when the ID is unknown.
func (s *Store) PostWithRelations(id int) (*PostView, error) {
	doc, err := readDocument(s.path)
	if err != nil {
		return nil, err
	}

	for _, post := range doc.Posts {
		if post.ID == id {
			views := hydratePosts(doc, []models.Post{post})
			return &views[0], nil
		}
	}
	return nil, nil
}

// hydratePosts resolves category and tag references for each post and
// sorts the result by creation time, newest first. Dangling references
// (possible in a hand-edited file) hydrate to nil / are skipped.
func hydratePosts(doc *document, posts []models.Post) []PostView {
	categoriesByID := make(map[int]models.Category, len(doc.Categories))
	for _, category := range doc.Categories {
		categoriesByID[category.ID] = category
	}
	tagsByID := make(map[int]models.Tag, len(doc.Tags))
	for _, tag := range doc.Tags {
		tagsByID[tag.ID] = tag
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		view := PostView{Post: post, Tags: make([]models.Tag, 0, len(post.TagIDs))}
		if category, ok := categoriesByID[post.CategoryID]; ok {
			view.Category = &category
		}
		for _, id := range post.TagIDs {
			if tag, ok := tagsByID[id]; ok {
				view.Tags = append(view.Tags, tag)
			}
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views
}

func findCategoryBySlug(doc *document, slug string) *models.Category {
	for i := range doc.Categories {
		if doc.Categories[i].Slug == slug {
			return &doc.Categories[i]
		}
	}
	return nil
}
