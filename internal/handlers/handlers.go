// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the JotPress backend.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct. Write endpoints accept
// both JSON bodies and form submissions: JSON clients get JSON
// responses, forms get a 303 redirect carrying a notice or error.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"jotpress/internal/store"
	"jotpress/internal/tags"
)

// TagList accepts the tags field of a JSON body as either an array of
// strings or a single raw string to be split on commas and whitespace.
type TagList []string

// UnmarshalJSON implements json.Unmarshaler.
func (tl *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*tl = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*tl = tags.ParseInput(raw)
	return nil
}

// KeywordList accepts a keywords field as either an array of strings
// or a single raw string split on commas.
type KeywordList []string

// UnmarshalJSON implements json.Unmarshaler.
func (kl *KeywordList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*kl = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*kl = tags.SplitKeywords(raw)
	return nil
}

// isJSON reports whether the request body is JSON rather than a form.
func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError maps a store error onto an HTTP status: validation
// failures become 422, missing records 404, everything else 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case store.IsValidation(err):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// redirectWith sends a 303 redirect to target with a single query
// parameter, used by form submissions to carry a notice or error back
// to the admin UI.
func redirectWith(w http.ResponseWriter, r *http.Request, target, param, value string) {
	http.Redirect(w, r, target+"?"+param+"="+url.QueryEscape(value), http.StatusSeeOther)
}

// formError routes a store error back to a form client: validation
// failures redirect with the message, anything else gets the JSON
// error path.
func formError(w http.ResponseWriter, r *http.Request, target string, err error) {
	if store.IsValidation(err) || errors.Is(err, store.ErrNotFound) {
		redirectWith(w, r, target, "error", err.Error())
		return
	}
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	redirectWith(w, r, target, "error", "internal server error")
}
