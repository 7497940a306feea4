// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"jotpress/internal/config"
	"jotpress/internal/session"
)

// Auth groups the authentication HTTP handlers.
type Auth struct {
	cfg      *config.Config
	sessions *session.Store
}

// NewAuth creates a new Auth handler group.
func NewAuth(cfg *config.Config, sessions *session.Store) *Auth {
	return &Auth{cfg: cfg, sessions: sessions}
}

// Login verifies the admin credential and issues a session cookie.
// Accepts a JSON body {"username","password"} or a form submission.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var username, password string
	if isJSON(r) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		username, password = body.Username, body.Password
	} else {
		username = r.FormValue("username")
		password = r.FormValue("password")
	}

	if !a.cfg.VerifyAdmin(username, password) {
		slog.Warn("login rejected", "username", username, "remote", r.RemoteAddr)
		if isJSON(r) {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		redirectWith(w, r, "/admin/login", "error", "invalid credentials")
		return
	}

	if _, err := a.sessions.Create(w, session.Data{Username: username}); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("login accepted", "username", username)
	if isJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{"message": "ok"})
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(w, r)
	if isJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{"message": "ok"})
		return
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
