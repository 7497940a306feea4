package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jotpress/internal/session"
)

// authedRequest creates a request carrying a valid session cookie.
func authedRequest(t *testing.T, store *session.Store, method, target string) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	id, err := store.Create(w, session.Data{Username: "admin"})
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
	return req
}

func TestLoadSession(t *testing.T) {
	store := session.NewStore(0)

	var got *session.Data
	handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromCtx(r.Context())
	}))

	// Without a cookie the context stays empty.
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if got != nil {
		t.Error("expected nil session for unauthenticated request")
	}

	// With a valid cookie the session lands in the context.
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(t, store, http.MethodGet, "/admin"))
	if got == nil {
		t.Fatal("expected session in context")
	}
	if got.Username != "admin" {
		t.Errorf("username: got %q, want %q", got.Username, "admin")
	}
}

func TestRequireAuthRedirectsBrowser(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("location: got %q, want %q", loc, "/admin/login")
	}
}

func TestRequireAuthRejectsJSONClient(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/admin/posts", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "unauthorized") {
		t.Errorf("body: got %q, want unauthorized error", rr.Body.String())
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	store := session.NewStore(0)

	called := false
	handler := LoadSession(store)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(t, store, http.MethodGet, "/admin/posts"))

	if !called {
		t.Fatal("expected handler to be reached")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", rr.Code)
	}
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		accept      string
		want        bool
	}{
		{"json content type", "application/json", "", true},
		{"json accept", "", "application/json", true},
		{"form post", "application/x-www-form-urlencoded", "", false},
		{"browser", "", "text/html,application/xhtml+xml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if got := wantsJSON(req); got != tt.want {
				t.Errorf("wantsJSON: got %v, want %v", got, tt.want)
			}
		})
	}
}
