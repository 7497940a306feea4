package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"jotpress/internal/models"
)

func tempStoragePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "storage.json")
}

func TestReadDocument_MissingFile(t *testing.T) {
	doc, err := readDocument(tempStoragePath(t))
	if err != nil {
		t.Fatalf("readDocument: %v", err)
	}

	if len(doc.Categories) != 1 {
		t.Fatalf("categories: got %d, want 1", len(doc.Categories))
	}
	def := doc.Categories[0]
	if def.ID != 1 || def.Slug != models.DefaultCategorySlug || def.Name != models.DefaultCategoryName {
		t.Errorf("default category = %+v", def)
	}
	if doc.Meta.NextCategoryID != 2 || doc.Meta.NextTagID != 1 || doc.Meta.NextPostID != 1 {
		t.Errorf("meta = %+v, want {2 1 1}", doc.Meta)
	}
	if len(doc.Tags) != 0 || len(doc.Posts) != 0 {
		t.Errorf("expected empty tags and posts, got %d tags, %d posts", len(doc.Tags), len(doc.Posts))
	}
}

func TestReadDocument_EmptyFile(t *testing.T) {
	path := tempStoragePath(t)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := readDocument(path)
	if err != nil {
		t.Fatalf("readDocument: %v", err)
	}
	if len(doc.Categories) != 1 || doc.Categories[0].Slug != models.DefaultCategorySlug {
		t.Errorf("expected fresh default state, got %+v", doc.Categories)
	}
}

func TestReadDocument_CorruptFileResets(t *testing.T) {
	path := tempStoragePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := readDocument(path)
	if err != nil {
		t.Fatalf("readDocument: %v", err)
	}
	if len(doc.Categories) != 1 || doc.Categories[0].Slug != models.DefaultCategorySlug {
		t.Errorf("expected reset to defaults, got %+v", doc.Categories)
	}
	if doc.Meta.NextCategoryID != 2 {
		t.Errorf("nextCategoryId: got %d, want 2", doc.Meta.NextCategoryID)
	}
}

func TestReadDocument_NormalizesPartialState(t *testing.T) {
	path := tempStoragePath(t)
	partial := `{
  "categories": [{ "id": 5, "name": "生活", "slug": "life" }],
  "posts": [{ "id": 3, "title": "t", "content": "c", "categoryId": 5 }],
  "meta": { "nextPostId": 4 }
}`
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := readDocument(path)
	if err != nil {
		t.Fatalf("readDocument: %v", err)
	}

	// The default category is recreated alongside the existing one.
	if len(doc.Categories) != 2 {
		t.Fatalf("categories: got %d, want 2", len(doc.Categories))
	}
	if doc.Categories[1].Slug != models.DefaultCategorySlug {
		t.Errorf("recreated category slug = %q", doc.Categories[1].Slug)
	}
	if doc.Categories[1].ID != 1 {
		t.Errorf("recreated category id = %d, want 1", doc.Categories[1].ID)
	}

	// Nil collections and keyword lists become empty slices.
	if doc.Tags == nil {
		t.Error("tags should be non-nil")
	}
	if doc.Categories[0].Keywords == nil {
		t.Error("keywords should be non-nil")
	}
	if doc.Posts[0].TagIDs == nil {
		t.Error("tagIds should be non-nil")
	}

	// Missing counters reset to their minimums; present ones are kept.
	if doc.Meta.NextPostID != 4 {
		t.Errorf("nextPostId: got %d, want 4", doc.Meta.NextPostID)
	}
	if doc.Meta.NextTagID != 1 {
		t.Errorf("nextTagId: got %d, want 1", doc.Meta.NextTagID)
	}
}

func TestWriteDocument_PersistedLayout(t *testing.T) {
	path := tempStoragePath(t)
	doc := initialDocument()
	if err := writeDocument(path, doc); err != nil {
		t.Fatalf("writeDocument: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	// The file must match the documented wire layout: top-level
	// categories/tags/posts arrays plus the meta counters.
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"categories", "tags", "posts", "meta"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	// Empty collections serialize as arrays, not null.
	var decoded struct {
		Tags  []models.Tag  `json:"tags"`
		Posts []models.Post `json:"posts"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal typed: %v", err)
	}
	if string(payload["tags"]) == "null" || string(payload["posts"]) == "null" {
		t.Error("empty collections must serialize as [] not null")
	}
}
