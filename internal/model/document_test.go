package model

import "testing"

func TestDocumentSlug(t *testing.T) {
	tests := map[string]struct {
		path string
		want string
	}{
		"plain file":    {path: "docs/developer/standard/solid.md", want: "solid"},
		"nested":        {path: "docs/developer/standard/go/errors.md", want: "errors"},
		"no extension":  {path: "docs/notes", want: "notes"},
		"absolute path": {path: "/corpus/docs/developer/standard/fp.md", want: "fp"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := Document{Path: tt.path}
			if got := d.Slug(); got != tt.want {
				t.Errorf("Slug() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentDisplayTitle(t *testing.T) {
	withTitle := Document{Title: "SOLID Principles", Path: "docs/solid.md"}
	if got := withTitle.DisplayTitle(); got != "SOLID Principles" {
		t.Errorf("DisplayTitle() = %q, want title", got)
	}

	noTitle := Document{Path: "docs/solid.md"}
	if got := noTitle.DisplayTitle(); got != "solid" {
		t.Errorf("DisplayTitle() = %q, want slug fallback", got)
	}
}
