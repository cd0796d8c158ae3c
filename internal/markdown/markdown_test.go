package markdown

import (
	"testing"
)

const sampleDoc = `# Datetime Handling

Conventions for dates across languages.

## Parsing

See [the reference](reference.md) and [examples](examples.md#parsing).
External: [RFC 3339](https://www.rfc-editor.org/rfc/rfc3339) and <https://example.com>.

` + "```go\ntime.Parse(time.RFC3339, s)\n```" + `

` + "```\nuntagged block\n```" + `

| Language | Library |
|----------|---------|
| Go       | time    |
`

func TestAnalyzeHeadings(t *testing.T) {
	a := Analyze([]byte(sampleDoc))

	if len(a.Headings) != 2 {
		t.Fatalf("got %d headings, want 2: %v", len(a.Headings), a.Headings)
	}
	if a.Headings[0].Level != 1 || a.Headings[0].Text != "Datetime Handling" {
		t.Errorf("first heading = %+v, want level 1 %q", a.Headings[0], "Datetime Handling")
	}
	if a.Headings[1].Level != 2 || a.Headings[1].Text != "Parsing" {
		t.Errorf("second heading = %+v, want level 2 %q", a.Headings[1], "Parsing")
	}
}

func TestAnalyzeLinks(t *testing.T) {
	a := Analyze([]byte(sampleDoc))

	// Two relative, one external, one autolink.
	if len(a.Links) != 4 {
		t.Fatalf("got %d links, want 4: %v", len(a.Links), a.Links)
	}

	rel := a.RelativeLinks()
	if len(rel) != 2 {
		t.Fatalf("got %d relative links, want 2: %v", len(rel), rel)
	}
	if rel[0] != "reference.md" {
		t.Errorf("rel[0] = %q, want %q", rel[0], "reference.md")
	}
	// Fragment must be stripped.
	if rel[1] != "examples.md" {
		t.Errorf("rel[1] = %q, want %q", rel[1], "examples.md")
	}
}

func TestAnalyzeCodeBlocks(t *testing.T) {
	a := Analyze([]byte(sampleDoc))

	if len(a.CodeBlocks) != 2 {
		t.Fatalf("got %d code blocks, want 2: %v", len(a.CodeBlocks), a.CodeBlocks)
	}
	if a.CodeBlocks[0].Language != "go" {
		t.Errorf("first block language = %q, want %q", a.CodeBlocks[0].Language, "go")
	}
	if a.CodeBlocks[1].Language != "" {
		t.Errorf("second block language = %q, want empty", a.CodeBlocks[1].Language)
	}
	if a.CodeBlocks[0].Line == 0 {
		t.Error("first block line should be recorded")
	}
}

func TestAnalyzeTable(t *testing.T) {
	a := Analyze([]byte(sampleDoc))
	if !a.HasTable {
		t.Error("expected table to be detected")
	}

	plain := Analyze([]byte("no table here\n"))
	if plain.HasTable {
		t.Error("unexpected table detection")
	}
}

func TestTitle(t *testing.T) {
	if got := Title([]byte(sampleDoc)); got != "Datetime Handling" {
		t.Errorf("Title() = %q, want %q", got, "Datetime Handling")
	}
	if got := Title([]byte("## Only an H2\n")); got != "" {
		t.Errorf("Title() = %q, want empty", got)
	}
}

func TestIsRelativeLink(t *testing.T) {
	tests := map[string]struct {
		dest string
		want bool
	}{
		"relative file":   {dest: "reference.md", want: true},
		"parent relative": {dest: "../standard/solid.md", want: true},
		"anchor":          {dest: "#section", want: false},
		"https":           {dest: "https://example.com", want: false},
		"mailto":          {dest: "mailto:a@b.c", want: false},
		"empty":           {dest: "", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := IsRelativeLink(tt.dest); got != tt.want {
				t.Errorf("IsRelativeLink(%q) = %v, want %v", tt.dest, got, tt.want)
			}
		})
	}
}
