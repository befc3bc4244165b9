// Package blog loads markdown posts with YAML frontmatter from a content
// directory.
package blog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperr "github.com/apylist/apylist/internal/errors"
	"gopkg.in/yaml.v3"
)

type Metadata struct {
	Title       string `yaml:"title" json:"title"`
	PublishedAt string `yaml:"publishedAt" json:"publishedAt"`
	Summary     string `yaml:"summary" json:"summary"`
	Image       string `yaml:"image" json:"image,omitempty"`
	Category    string `yaml:"category" json:"category,omitempty"`
}

type Post struct {
	Slug     string   `json:"slug"`
	Metadata Metadata `json:"metadata"`
	Content  string   `json:"content"`
}

// Load reads every .md/.mdx file in dir. A missing directory is an empty
// blog, not an error.
func Load(dir string) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Post{}, nil
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "read blog directory", err)
	}

	posts := make([]Post, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".md" && ext != ".mdx" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, fmt.Sprintf("read post %s", entry.Name()), err)
		}
		meta, content, err := parseFrontmatter(string(raw))
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInvalid, fmt.Sprintf("parse post %s", entry.Name()), err)
		}
		posts = append(posts, Post{
			Slug:     strings.TrimSuffix(entry.Name(), ext),
			Metadata: meta,
			Content:  content,
		})
	}

	// Newest first.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Metadata.PublishedAt > posts[j].Metadata.PublishedAt
	})
	return posts, nil
}

// Find returns the post with the given slug.
func Find(posts []Post, slug string) (Post, bool) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

func parseFrontmatter(raw string) (Metadata, string, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	if !strings.HasPrefix(raw, "---") {
		return Metadata{}, "", fmt.Errorf("missing frontmatter")
	}
	rest := strings.TrimPrefix(raw, "---")
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return Metadata{}, "", fmt.Errorf("unterminated frontmatter")
	}
	var meta Metadata
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return Metadata{}, "", err
	}
	content := rest[idx+len("\n---"):]
	content = strings.TrimPrefix(content, "\n")
	return meta, strings.TrimSpace(content), nil
}

// FormatDate renders a publishedAt date as "January 2, 2006", optionally with
// a relative suffix like "(3mo ago)".
func FormatDate(date string, withRelative bool) string {
	if !strings.Contains(date, "T") {
		date += "T00:00:00"
	}
	t, err := time.Parse("2006-01-02T15:04:05", date)
	if err != nil {
		return date
	}

	full := t.Format("January 2, 2006")
	if !withRelative {
		return full
	}

	now := time.Now()
	relative := "Today"
	switch {
	case now.Year() > t.Year():
		relative = fmt.Sprintf("%dy ago", now.Year()-t.Year())
	case int(now.Month()) > int(t.Month()):
		relative = fmt.Sprintf("%dmo ago", int(now.Month())-int(t.Month()))
	case now.Day() > t.Day():
		relative = fmt.Sprintf("%dd ago", now.Day()-t.Day())
	}
	return fmt.Sprintf("%s (%s)", full, relative)
}
