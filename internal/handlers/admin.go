// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"jotpress/internal/cache"
	"jotpress/internal/models"
	"jotpress/internal/store"
	"jotpress/internal/tags"
)

// Admin groups the authenticated write handlers. Every successful
// mutation clears the read-view cache, since a single post can change
// the overview, its category view and every tag view it touches.
type Admin struct {
	store *store.Store
	views *cache.ViewCache
}

// NewAdmin creates a new Admin handler group. views may be nil when
// Valkey is not configured.
func NewAdmin(st *store.Store, views *cache.ViewCache) *Admin {
	return &Admin{store: st, views: views}
}

// CreatePost handles POST /admin/api/posts. JSON bodies are attributed
// to the "admin-api" source, form submissions to "admin".
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in store.CreatePostInput

	if isJSON(r) {
		var body struct {
			Title        string  `json:"title"`
			Content      string  `json:"content"`
			CategoryID   int     `json:"categoryId"`
			Tags         TagList `json:"tags"`
			AutoClassify bool    `json:"autoClassify"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		in = store.CreatePostInput{
			Title:        body.Title,
			Content:      body.Content,
			CategoryID:   body.CategoryID,
			TagNames:     body.Tags,
			AutoClassify: body.AutoClassify,
			Source:       models.SourceAdminAPI,
		}
	} else {
		categoryID, _ := strconv.Atoi(r.FormValue("categoryId"))
		in = store.CreatePostInput{
			Title:        r.FormValue("title"),
			Content:      r.FormValue("content"),
			CategoryID:   categoryID,
			TagNames:     tags.ParseInput(r.FormValue("tags")),
			AutoClassify: formBool(r.FormValue("autoClassify")),
			Source:       models.SourceAdmin,
		}
	}

	result, err := a.store.CreatePost(r.Context(), in)
	if err != nil {
		if isJSON(r) {
			respondError(w, r, err)
		} else {
			formError(w, r, "/admin", err)
		}
		return
	}

	a.views.InvalidateAll(r.Context())

	if isJSON(r) {
		respondJSON(w, http.StatusCreated, result)
		return
	}
	redirectWith(w, r, "/admin", "notice", "post created")
}

// CreateCategory handles POST /admin/api/categories.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in store.CreateCategoryInput

	if isJSON(r) {
		var body struct {
			Name     string      `json:"name"`
			Slug     string      `json:"slug"`
			Keywords KeywordList `json:"keywords"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		in = store.CreateCategoryInput{Name: body.Name, Slug: body.Slug, Keywords: body.Keywords}
	} else {
		in = store.CreateCategoryInput{
			Name:     r.FormValue("name"),
			Slug:     r.FormValue("slug"),
			Keywords: tags.SplitKeywords(r.FormValue("keywords")),
		}
	}

	category, err := a.store.CreateCategory(r.Context(), in)
	if err != nil {
		if isJSON(r) {
			respondError(w, r, err)
		} else {
			formError(w, r, "/admin", err)
		}
		return
	}

	a.views.InvalidateAll(r.Context())

	if isJSON(r) {
		respondJSON(w, http.StatusCreated, category)
		return
	}
	redirectWith(w, r, "/admin", "notice", "category created")
}

// UpdateCategoryKeywords handles POST /admin/api/categories/update,
// replacing the keyword set of an existing category.
func (a *Admin) UpdateCategoryKeywords(w http.ResponseWriter, r *http.Request) {
	var id int
	var keywords []string

	if isJSON(r) {
		var body struct {
			ID       int         `json:"id"`
			Keywords KeywordList `json:"keywords"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		id, keywords = body.ID, body.Keywords
	} else {
		id, _ = strconv.Atoi(r.FormValue("id"))
		keywords = tags.SplitKeywords(r.FormValue("keywords"))
	}

	category, err := a.store.UpdateCategoryKeywords(r.Context(), id, keywords)
	if err != nil {
		if isJSON(r) {
			respondError(w, r, err)
		} else {
			formError(w, r, "/admin", err)
		}
		return
	}

	a.views.InvalidateAll(r.Context())

	if isJSON(r) {
		respondJSON(w, http.StatusOK, category)
		return
	}
	redirectWith(w, r, "/admin", "notice", "keywords updated")
}

// formBool interprets checkbox-style form values.
func formBool(v string) bool {
	return v == "on" || v == "true" || v == "1"
}
