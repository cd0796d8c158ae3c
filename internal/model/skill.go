package model

import (
	"slices"
	"strings"
	"time"
)

// Skill represents a single skill directory in the corpus: a SKILL.md guide
// with front matter and optional reference/examples companion files.
type Skill struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Invocation  []string          `json:"invocation,omitempty"`
	Path        string            `json:"path"`
	Dir         string            `json:"dir"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Content     string            `json:"content"`
	ModifiedAt  time.Time         `json:"modified_at"`

	// Companion files named by the corpus layout convention.
	HasReference bool `json:"has_reference"`
	HasExamples  bool `json:"has_examples"`

	// HasFrontmatter records whether SKILL.md opened with a fenced
	// front-matter block at all.
	HasFrontmatter bool `json:"has_frontmatter"`

	// NameDeclared records whether the name came from front matter rather
	// than the directory-name fallback.
	NameDeclared bool `json:"name_declared"`

	// ExtraFiles lists files in the skill directory outside the layout
	// convention (anything besides SKILL.md, reference.md, examples.md).
	ExtraFiles []string `json:"extra_files,omitempty"`
}

// HasKeyword reports whether the skill declares the given invocation keyword.
// Comparison is case-insensitive.
func (s Skill) HasKeyword(keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	return slices.ContainsFunc(s.Invocation, func(k string) bool {
		return strings.ToLower(k) == keyword
	})
}

// Companions returns the names of companion files present in the skill
// directory, in the conventional order.
func (s Skill) Companions() []string {
	var files []string
	if s.HasReference {
		files = append(files, "reference.md")
	}
	if s.HasExamples {
		files = append(files, "examples.md")
	}
	return files
}

// DisplayKeywords returns the invocation keywords joined for table output,
// or "-" when none are declared.
func (s Skill) DisplayKeywords() string {
	if len(s.Invocation) == 0 {
		return "-"
	}
	return strings.Join(s.Invocation, ", ")
}
