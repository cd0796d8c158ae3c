package model

import (
	"path/filepath"
	"strings"
	"time"
)

// Document represents a standard document: a long-form design essay or
// per-language convention table under the standards directory.
type Document struct {
	Title      string    `json:"title"`
	Path       string    `json:"path"`
	Section    string    `json:"section,omitempty"`
	Content    string    `json:"content"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Slug returns the document's file name without the .md extension.
func (d Document) Slug() string {
	base := filepath.Base(d.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DisplayTitle returns the document title, falling back to the slug when the
// document has no H1 heading.
func (d Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Slug()
}
