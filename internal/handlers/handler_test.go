// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. The routes are wired the same way the router
// package wires them, against a store in a temp directory.
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"jotpress/internal/config"
	"jotpress/internal/middleware"
	"jotpress/internal/session"
	"jotpress/internal/store"
)

const (
	testPassword = "correct-horse"
	testAPIToken = "test-token"
)

type testEnv struct {
	cfg      *config.Config
	store    *store.Store
	sessions *session.Store
	router   chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	cfg := &config.Config{
		Site:              config.SiteConfig{Name: "测试手记", Tagline: "test notes"},
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		APIToken:          testAPIToken,
	}

	st, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sessions := session.NewStore(0)
	auth := NewAuth(cfg, sessions)
	admin := NewAdmin(st, nil)
	public := NewPublic(cfg, st, nil)

	r := chi.NewRouter()
	r.Use(middleware.LoadSession(sessions))
	r.Route("/api", func(r chi.Router) {
		r.Get("/overview", public.Overview)
		r.Get("/categories/{slug}", public.Category)
		r.Get("/tags/{slug}", public.Tag)
		r.Get("/posts/{id}", public.Post)
		r.Post("/entries", public.Entries)
	})
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)
		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/posts", admin.CreatePost)
			r.Post("/categories", admin.CreateCategory)
			r.Post("/categories/update", admin.UpdateCategoryKeywords)
		})
	})

	return &testEnv{cfg: cfg, store: st, sessions: sessions, router: r}
}

// do runs a request through the router and returns the recorder.
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// formRequest builds a request with a form-encoded body.
func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// login authenticates through the login endpoint and returns the
// session cookie.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rr := e.do(jsonRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"username": "admin",
		"password": testPassword,
	}))
	if rr.Code != http.StatusOK {
		t.Fatalf("login: got status %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("login: no session cookie in response")
	return nil
}

// decodeJSON unmarshals a response body into v.
func decodeJSON(t *testing.T, body io.Reader, v any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
