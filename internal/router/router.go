// Package router sets up all HTTP routes and middleware chains for the
// JotPress backend. It organizes routes into public, API and admin
// groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"jotpress/internal/handlers"
	"jotpress/internal/middleware"
	"jotpress/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, auth *handlers.Auth, admin *handlers.Admin, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check, no auth.
	r.Get("/health", healthHandler)

	// Write endpoints share a limiter: login guessing and entry floods
	// both land on the single mutation worker.
	writeLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Public read API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/overview", public.Overview)
		r.Get("/categories/{slug}", public.Category)
		r.Get("/tags/{slug}", public.Tag)
		r.Get("/posts/{id}", public.Post)

		// Token-authenticated automation endpoint.
		r.With(writeLimiter.Middleware).Post("/entries", public.Entries)
	})

	// Admin routes.
	r.Route("/admin", func(r chi.Router) {
		r.With(writeLimiter.Middleware).Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		// Authenticated admin API.
		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/posts", admin.CreatePost)
			r.Post("/categories", admin.CreateCategory)
			r.Post("/categories/update", admin.UpdateCategoryKeywords)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
