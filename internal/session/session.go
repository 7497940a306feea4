// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session provides in-memory HTTP session management for the
// admin surface. Sessions are identified by a secure cookie and expire
// after a fixed TTL. The process is the single writer of the content
// document, so sessions do not need to survive a restart.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "jp_session"

	// DefaultTTL is how long a session lives before automatic expiry.
	DefaultTTL = 6 * time.Hour

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Data holds the session payload. It contains the authenticated
// admin's identity.
type Data struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type entry struct {
	data      Data
	expiresAt time.Time
}

// Store manages session lifecycle in process memory.
type Store struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
}

// NewStore creates an in-memory session store.
func NewStore(ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
	}
}

// Create generates a new session, records it, and sets the session
// cookie on the response. Returns the session ID.
func (s *Store) Create(w http.ResponseWriter, data Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	data.CreatedAt = time.Now()

	s.mu.Lock()
	s.sessions[id] = entry{data: data, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true behind TLS in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return id, nil
}

// Get retrieves session data using the session ID from the request
// cookie. Returns nil if no valid session exists. Expired sessions are
// removed lazily on access.
func (s *Store) Get(r *http.Request) *Data {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie = no session
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[cookie.Value]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.sessions, cookie.Value)
		return nil
	}

	data := e.data
	return &data
}

// Destroy removes the session and clears the cookie.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(CookieName)
	if err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
