// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"jotpress/internal/cache"
	"jotpress/internal/config"
	"jotpress/internal/markdown"
	"jotpress/internal/models"
	"jotpress/internal/store"
	"jotpress/internal/tags"
)

// Public groups the read endpoints and the token-authenticated entries
// API. Read responses are marshaled once and stored in the view cache,
// so repeat requests skip the store entirely.
type Public struct {
	cfg   *config.Config
	store *store.Store
	views *cache.ViewCache
}

// NewPublic creates a new Public handler group. views may be nil when
// Valkey is not configured.
func NewPublic(cfg *config.Config, st *store.Store, views *cache.ViewCache) *Public {
	return &Public{cfg: cfg, store: st, views: views}
}

// overviewPayload is the overview response: the site identity plus the
// full content listing.
type overviewPayload struct {
	Site config.SiteConfig `json:"site"`
	*store.Overview
}

// Overview handles GET /api/overview.
func (p *Public) Overview(w http.ResponseWriter, r *http.Request) {
	if payload, ok := p.views.Get(r.Context(), cache.OverviewKey()); ok {
		writeCached(w, payload)
		return
	}

	overview, err := p.store.Overview()
	if err != nil {
		respondError(w, r, err)
		return
	}

	p.respondCached(w, r, cache.OverviewKey(), http.StatusOK, overviewPayload{
		Site:     p.cfg.Site,
		Overview: overview,
	})
}

// Category handles GET /api/categories/{slug}.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	if payload, ok := p.views.Get(r.Context(), cache.CategoryKey(slugParam)); ok {
		writeCached(w, payload)
		return
	}

	view, err := p.store.CategoryWithPosts(slugParam)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if view == nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}

	p.respondCached(w, r, cache.CategoryKey(slugParam), http.StatusOK, view)
}

// Tag handles GET /api/tags/{slug}.
func (p *Public) Tag(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	if payload, ok := p.views.Get(r.Context(), cache.TagKey(slugParam)); ok {
		writeCached(w, payload)
		return
	}

	view, err := p.store.TagWithPosts(slugParam)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if view == nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "tag not found"})
		return
	}

	p.respondCached(w, r, cache.TagKey(slugParam), http.StatusOK, view)
}

// postPayload is the post detail response: the stored post and its
// relations, plus the content rendered to HTML.
type postPayload struct {
	*store.PostView
	ContentHTML string `json:"contentHtml"`
}

// Post handles GET /api/posts/{id}.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
		return
	}

	if payload, ok := p.views.Get(r.Context(), cache.PostKey(id)); ok {
		writeCached(w, payload)
		return
	}

	view, err := p.store.PostWithRelations(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if view == nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
		return
	}

	contentHTML, err := markdown.ToHTML(view.Content)
	if err != nil {
		slog.Error("render post content failed", "post", id, "error", err)
		contentHTML = ""
	}

	p.respondCached(w, r, cache.PostKey(id), http.StatusOK, postPayload{
		PostView:    view,
		ContentHTML: contentHTML,
	})
}

// Entries handles POST /api/entries: the automation endpoint for
// submitting posts with a bearer token. Explicit tags are merged with
// hashtags mined from the content, and the category is always picked
// by the classifier.
func (p *Public) Entries(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}
	if !p.cfg.VerifyAPIToken(token) {
		slog.Warn("entries token rejected", "remote", r.RemoteAddr)
		respondJSON(w, http.StatusForbidden, map[string]string{"error": "invalid token"})
		return
	}

	var body struct {
		Title   string  `json:"title"`
		Content string  `json:"content"`
		Tags    TagList `json:"tags"`
		Source  string  `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	source := body.Source
	if source == "" {
		source = models.SourceAPI
	}

	tagNames := append([]string{}, body.Tags...)
	tagNames = append(tagNames, tags.ExtractHashtags(body.Content)...)

	result, err := p.store.CreatePost(r.Context(), store.CreatePostInput{
		Title:        body.Title,
		Content:      body.Content,
		TagNames:     tagNames,
		Source:       source,
		AutoClassify: true,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	p.views.InvalidateAll(r.Context())

	tagSlugs := make([]string, 0, len(result.Tags))
	for _, tag := range result.Tags {
		tagSlugs = append(tagSlugs, tag.Slug)
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"message":  "created",
		"postId":   result.Post.ID,
		"category": result.Category.Slug,
		"tags":     tagSlugs,
	})
}

// respondCached marshals v, stores it in the view cache, and writes it.
func (p *Public) respondCached(w http.ResponseWriter, r *http.Request, key string, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		respondError(w, r, err)
		return
	}
	p.views.Set(r.Context(), key, payload)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(payload)
}

// writeCached writes a previously marshaled payload.
func writeCached(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
