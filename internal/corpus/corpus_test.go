package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skilldex/skilldex/internal/cache"
)

const datetimeSkill = `---
name: datetime
description: Cross-language datetime handling conventions.
invocation:
  - dates
  - timezones
---
# Datetime

Use UTC everywhere.
`

const testingSkill = `---
name: testing
description: Testing conventions.
invocation:
  - tests
---
# Testing
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// newTestCorpus builds a minimal corpus tree and returns its root.
func newTestCorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "skills", "datetime", "SKILL.md"), datetimeSkill)
	writeFile(t, filepath.Join(root, "skills", "datetime", "reference.md"), "# Reference\n")
	writeFile(t, filepath.Join(root, "skills", "testing", "SKILL.md"), testingSkill)
	writeFile(t, filepath.Join(root, "docs", "developer", "standard", "solid.md"), "# SOLID Principles\n\nText.\n")
	writeFile(t, filepath.Join(root, "docs", "developer", "standard", "go", "errors.md"), "# Error Handling in Go\n")
	writeFile(t, filepath.Join(root, "nix", "packages.nix"), "with pkgs; [\n  gopls\n]\n")
	return root
}

func TestLoad(t *testing.T) {
	root := newTestCorpus(t)

	c, err := Load(root, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(c.Skills) != 2 {
		t.Fatalf("got %d skills, want 2", len(c.Skills))
	}
	// Sorted by name.
	if c.Skills[0].Name != "datetime" || c.Skills[1].Name != "testing" {
		t.Errorf("skills not sorted by name: %q, %q", c.Skills[0].Name, c.Skills[1].Name)
	}

	dt := c.Skills[0]
	if dt.Description != "Cross-language datetime handling conventions." {
		t.Errorf("description = %q", dt.Description)
	}
	if len(dt.Invocation) != 2 || dt.Invocation[0] != "dates" || dt.Invocation[1] != "timezones" {
		t.Errorf("invocation = %v", dt.Invocation)
	}
	if !dt.HasReference {
		t.Error("reference.md companion not detected")
	}
	if dt.HasExamples {
		t.Error("examples.md should not be detected")
	}
	if !dt.HasFrontmatter {
		t.Error("frontmatter not flagged")
	}

	if len(c.Standards) != 2 {
		t.Fatalf("got %d standards, want 2", len(c.Standards))
	}
	var nested bool
	for _, d := range c.Standards {
		if d.Section == "go" && d.Title == "Error Handling in Go" {
			nested = true
		}
	}
	if !nested {
		t.Errorf("nested standard not found: %+v", c.Standards)
	}

	if c.NixPath == "" {
		t.Error("nix fragment not detected")
	}
	if len(c.Problems) != 0 {
		t.Errorf("unexpected problems: %v", c.Problems)
	}
}

func TestLoadRecordsProblems(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "skills", "broken", "SKILL.md"), "---\nname: [unclosed\n---\nbody\n")
	writeFile(t, filepath.Join(root, "skills", "ok", "SKILL.md"), testingSkill)

	c, err := Load(root, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Skills) != 1 {
		t.Errorf("got %d skills, want 1", len(c.Skills))
	}
	if len(c.Problems) != 1 {
		t.Fatalf("got %d problems, want 1", len(c.Problems))
	}
	if c.Problems[0].Message() == "" {
		t.Error("problem message should not be empty")
	}
}

func TestLoadMissingRoot(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope"), Options{}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestLoadEmptyTree(t *testing.T) {
	c, err := Load(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Skills) != 0 || len(c.Standards) != 0 || c.NixPath != "" {
		t.Errorf("empty tree should load empty corpus: %+v", c)
	}
}

func TestLoadWithCache(t *testing.T) {
	root := newTestCorpus(t)
	pc, err := cache.New("corpus", t.TempDir())
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}

	c, err := Load(root, Options{Cache: pc})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pc.Size() != len(c.Skills) {
		t.Errorf("cache size = %d, want %d", pc.Size(), len(c.Skills))
	}

	// Second load should be served from the cache and see the same skills.
	c2, err := Load(root, Options{Cache: pc})
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(c2.Skills) != len(c.Skills) {
		t.Errorf("cached load: got %d skills, want %d", len(c2.Skills), len(c.Skills))
	}
}

func TestLoadWithCacheSeesNewCompanions(t *testing.T) {
	root := newTestCorpus(t)
	pc, err := cache.New("corpus", t.TempDir())
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}

	if _, err := Load(root, Options{Cache: pc}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Companion and stray files appear without SKILL.md changing, so the
	// cached entry stays valid. Directory facts must still be current.
	testingDir := filepath.Join(root, "skills", "testing")
	writeFile(t, filepath.Join(testingDir, "reference.md"), "# Reference\n")
	writeFile(t, filepath.Join(testingDir, "notes.txt"), "scratch")

	c, err := Load(root, Options{Cache: pc})
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}

	skill, ok := c.SkillByName("testing")
	if !ok {
		t.Fatal("testing skill not found")
	}
	if !skill.HasReference {
		t.Error("new reference.md not detected on cached load")
	}
	if len(skill.ExtraFiles) != 1 || skill.ExtraFiles[0] != "notes.txt" {
		t.Errorf("ExtraFiles = %v, want [notes.txt]", skill.ExtraFiles)
	}

	// And the reverse: removing a companion must clear the cached fact.
	if err := os.Remove(filepath.Join(root, "skills", "datetime", "reference.md")); err != nil {
		t.Fatal(err)
	}
	c, err = Load(root, Options{Cache: pc})
	if err != nil {
		t.Fatalf("third Load: %v", err)
	}
	dt, ok := c.SkillByName("datetime")
	if !ok {
		t.Fatal("datetime skill not found")
	}
	if dt.HasReference {
		t.Error("removed reference.md still reported on cached load")
	}
}

func TestSkillByName(t *testing.T) {
	root := newTestCorpus(t)
	c, err := Load(root, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, ok := c.SkillByName("DATETIME"); !ok {
		t.Error("case-insensitive lookup failed")
	}
	if _, ok := c.SkillByName("missing"); ok {
		t.Error("lookup of missing skill should fail")
	}
}

func TestKeywordIndex(t *testing.T) {
	root := newTestCorpus(t)
	c, err := Load(root, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	index := c.KeywordIndex()
	if names := index["dates"]; len(names) != 1 || names[0] != "datetime" {
		t.Errorf("index[dates] = %v", names)
	}
	if names := index["tests"]; len(names) != 1 || names[0] != "testing" {
		t.Errorf("index[tests] = %v", names)
	}
}

func TestParseSkillContentDefaults(t *testing.T) {
	// Name falls back to directory name when front matter omits it.
	skill, err := ParseSkillContent([]byte("---\ndescription: No name here.\n---\nBody.\n"), "/corpus/skills/fallback/SKILL.md")
	if err != nil {
		t.Fatalf("ParseSkillContent: %v", err)
	}
	if skill.Name != "fallback" {
		t.Errorf("Name = %q, want directory fallback", skill.Name)
	}

	// No front matter at all still yields a usable skill identity.
	skill, err = ParseSkillContent([]byte("# Bare document\n"), "/corpus/skills/bare/SKILL.md")
	if err != nil {
		t.Fatalf("ParseSkillContent: %v", err)
	}
	if skill.HasFrontmatter {
		t.Error("HasFrontmatter should be false")
	}
	if skill.Name != "bare" {
		t.Errorf("Name = %q, want %q", skill.Name, "bare")
	}
}

func TestParseSkillContentMetadata(t *testing.T) {
	content := []byte("---\nname: datetime\ndescription: d\ninvocation: [dates]\nauthor: docs-team\nversion: 2\n---\n")
	skill, err := ParseSkillContent(content, "/corpus/skills/datetime/SKILL.md")
	if err != nil {
		t.Fatalf("ParseSkillContent: %v", err)
	}
	if skill.Metadata["author"] != "docs-team" {
		t.Errorf("metadata author = %q", skill.Metadata["author"])
	}
	if skill.Metadata["version"] != "2" {
		t.Errorf("metadata version = %q", skill.Metadata["version"])
	}
	if _, ok := skill.Metadata["name"]; ok {
		t.Error("known fields must not leak into metadata")
	}
}

func TestInspectSkillDirExtraFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "skills", "datetime")
	writeFile(t, filepath.Join(dir, "SKILL.md"), datetimeSkill)
	writeFile(t, filepath.Join(dir, "examples.md"), "# Examples\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "scratch")
	writeFile(t, filepath.Join(dir, "assets", "diagram.png"), "")

	skill, err := ParseSkillFile(filepath.Join(dir, "SKILL.md"))
	if err != nil {
		t.Fatalf("ParseSkillFile: %v", err)
	}
	if !skill.HasExamples {
		t.Error("examples.md companion not detected")
	}
	if len(skill.ExtraFiles) != 2 {
		t.Fatalf("ExtraFiles = %v, want 2 entries", skill.ExtraFiles)
	}
	if skill.ExtraFiles[0] != "assets/" || skill.ExtraFiles[1] != "notes.txt" {
		t.Errorf("ExtraFiles = %v", skill.ExtraFiles)
	}
}
