package blog

import (
	"os"
	"path/filepath"
	"testing"
)

func writePost(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write post: %v", err)
	}
}

func TestLoadSortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "older.mdx", "---\ntitle: Older\npublishedAt: \"2024-01-10\"\nsummary: s\n---\n\nOld body\n")
	writePost(t, dir, "newer.md", "---\ntitle: Newer\npublishedAt: \"2024-06-01\"\nsummary: s\ncategory: Basics\n---\n\nNew body\n")
	writePost(t, dir, "notes.txt", "ignored")

	posts, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Slug != "newer" || posts[1].Slug != "older" {
		t.Fatalf("unexpected order: %s, %s", posts[0].Slug, posts[1].Slug)
	}
	if posts[0].Metadata.Category != "Basics" || posts[0].Content != "New body" {
		t.Fatalf("unexpected post: %+v", posts[0])
	}
}

func TestLoadMissingDirIsEmpty(t *testing.T) {
	posts, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty blog, got %d posts", len(posts))
	}
}

func TestLoadRejectsMissingFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "bad.md", "no frontmatter here")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for missing frontmatter")
	}
}

func TestFind(t *testing.T) {
	posts := []Post{{Slug: "a"}, {Slug: "b"}}
	if _, ok := Find(posts, "b"); !ok {
		t.Fatal("expected to find slug b")
	}
	if _, ok := Find(posts, "zzz"); ok {
		t.Fatal("did not expect to find slug zzz")
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-06-01", false); got != "June 1, 2024" {
		t.Fatalf("unexpected date: %q", got)
	}
	// Unparseable input passes through untouched.
	if got := FormatDate("soon", false); got != "soon" {
		t.Fatalf("unexpected passthrough: %q", got)
	}
}
