package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionCreateAndGet(t *testing.T) {
	store := NewStore(0)

	w := httptest.NewRecorder()

	sessionID, err := store.Create(w, Data{Username: "admin"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sessionID == "" {
		t.Error("expected non-empty session ID")
	}
	if len(sessionID) != idLength*2 {
		t.Errorf("session ID length: got %d, want %d", len(sessionID), idLength*2)
	}

	// Verify cookie was set.
	resp := w.Result()
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			sessionCookie = c
			break
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if sessionCookie.Value != sessionID {
		t.Errorf("cookie value: got %q, want %q", sessionCookie.Value, sessionID)
	}

	// Get the session back.
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sessionCookie)

	data := store.Get(req)
	if data == nil {
		t.Fatal("expected session data, got nil")
	}
	if data.Username != "admin" {
		t.Errorf("username: got %q, want %q", data.Username, "admin")
	}
	if data.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	store := NewStore(0)

	req := httptest.NewRequest("GET", "/", nil)
	if data := store.Get(req); data != nil {
		t.Error("expected nil for request without session cookie")
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	store := NewStore(0)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "deadbeef"})

	if data := store.Get(req); data != nil {
		t.Error("expected nil for unknown session ID")
	}
}

func TestSessionExpiry(t *testing.T) {
	store := NewStore(time.Millisecond)

	w := httptest.NewRecorder()
	sessionID, err := store.Create(w, Data{Username: "admin"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: sessionID})

	if data := store.Get(req); data != nil {
		t.Error("expected nil for expired session")
	}

	// Lazy expiry removes the entry.
	store.mu.Lock()
	_, ok := store.sessions[sessionID]
	store.mu.Unlock()
	if ok {
		t.Error("expected expired session to be deleted")
	}
}

func TestSessionDestroy(t *testing.T) {
	store := NewStore(0)

	w := httptest.NewRecorder()
	sessionID, err := store.Create(w, Data{Username: "admin"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest("POST", "/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: sessionID})

	w2 := httptest.NewRecorder()
	store.Destroy(w2, req)

	if data := store.Get(req); data != nil {
		t.Error("expected nil after Destroy")
	}

	// Cookie must be expired on the response.
	var cleared *http.Cookie
	for _, c := range w2.Result().Cookies() {
		if c.Name == CookieName {
			cleared = c
			break
		}
	}
	if cleared == nil {
		t.Fatal("expected clearing cookie to be set")
	}
	if cleared.MaxAge != -1 {
		t.Errorf("clearing cookie MaxAge: got %d, want -1", cleared.MaxAge)
	}
}
