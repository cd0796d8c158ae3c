// Package corpus loads a skill/standards documentation tree into memory:
// skill directories with SKILL.md front matter, long-form standard documents,
// and the optional Nix package-list fragment.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skilldex/skilldex/internal/cache"
	"github.com/skilldex/skilldex/internal/logging"
	"github.com/skilldex/skilldex/internal/markdown"
	"github.com/skilldex/skilldex/internal/model"
	"github.com/skilldex/skilldex/internal/parser"
	"github.com/skilldex/skilldex/internal/progress"
)

// Layout describes where the corpus families live relative to the root.
type Layout struct {
	// SkillsDir is the directory holding one subdirectory per skill.
	SkillsDir string
	// StandardsDir is the directory holding standard documents.
	StandardsDir string
	// NixFile is the path of the Nix package-list fragment.
	NixFile string
}

// DefaultLayout returns the conventional corpus layout.
func DefaultLayout() Layout {
	return Layout{
		SkillsDir:    "skills",
		StandardsDir: filepath.Join("docs", "developer", "standard"),
		NixFile:      filepath.Join("nix", "packages.nix"),
	}
}

// Options configures corpus loading.
type Options struct {
	// Layout overrides the conventional directory layout.
	Layout Layout
	// Cache, when non-nil, is consulted before parsing each skill file.
	Cache *cache.Cache
}

// Problem records a file that could not be loaded.
type Problem struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// Message returns the problem description for display and JSON output.
func (p Problem) Message() string {
	if p.Err == nil {
		return ""
	}
	return p.Err.Error()
}

// Corpus is a fully loaded documentation tree.
type Corpus struct {
	Root      string           `json:"root"`
	Skills    []model.Skill    `json:"skills"`
	Standards []model.Document `json:"standards"`
	// NixPath is the absolute path of the package-list fragment, or "" when
	// the corpus has none.
	NixPath  string    `json:"nix_path,omitempty"`
	Problems []Problem `json:"problems,omitempty"`
}

// Load walks the tree under root and parses every skill and standard
// document. Files that fail to parse are recorded as Problems rather than
// aborting the load.
func Load(root string, opts Options) (*Corpus, error) {
	defer logging.Timer("corpus-load")()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve corpus root %q: %w", root, err)
	}
	if info, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("corpus root %q: %w", root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("corpus root %q is not a directory", root)
	}

	layout := opts.Layout
	if layout == (Layout{}) {
		layout = DefaultLayout()
	}

	c := &Corpus{Root: absRoot}

	if err := c.loadSkills(layout, opts.Cache); err != nil {
		return nil, err
	}
	if err := c.loadStandards(layout); err != nil {
		return nil, err
	}

	nixPath := filepath.Join(absRoot, layout.NixFile)
	if info, err := os.Stat(nixPath); err == nil && !info.IsDir() {
		c.NixPath = nixPath
	}

	logging.Debug("corpus loaded",
		logging.Path(absRoot),
		logging.Count(len(c.Skills)),
		logging.Operation("load"),
	)

	return c, nil
}

// loadSkills discovers and parses every SKILL.md under the skills directory.
func (c *Corpus) loadSkills(layout Layout, pc *cache.Cache) error {
	base := filepath.Join(c.Root, layout.SkillsDir)
	files, err := parser.DiscoverFiles(base, []string{"**/SKILL.md"})
	if err != nil {
		return fmt.Errorf("failed to discover skill files in %q: %w", base, err)
	}

	logging.Debug("discovered skill files",
		logging.Path(base),
		logging.Count(len(files)),
	)

	bar := progress.Simple(int64(len(files)), "Parsing skills")
	defer func() { _ = bar.Finish() }()

	for _, filePath := range files {
		_ = bar.Add(1)

		if pc != nil {
			if skill, ok := pc.Get(filePath); ok {
				// The cache key is SKILL.md's modtime, which says nothing
				// about sibling files. Re-inspect the directory so companion
				// and stray-file facts stay current.
				inspectSkillDir(&skill)
				c.Skills = append(c.Skills, skill)
				continue
			}
		}

		skill, err := ParseSkillFile(filePath)
		if err != nil {
			logging.Warn("failed to parse skill file",
				logging.Path(filePath),
				logging.Err(err),
			)
			c.Problems = append(c.Problems, Problem{Path: filePath, Err: err})
			continue
		}

		if pc != nil {
			pc.Set(filePath, skill)
		}
		c.Skills = append(c.Skills, skill)
	}

	sort.Slice(c.Skills, func(i, j int) bool {
		return strings.ToLower(c.Skills[i].Name) < strings.ToLower(c.Skills[j].Name)
	})

	return nil
}

// loadStandards discovers and parses every Markdown file under the standards
// directory.
func (c *Corpus) loadStandards(layout Layout) error {
	base := filepath.Join(c.Root, layout.StandardsDir)
	files, err := parser.DiscoverFiles(base, []string{"**/*.md"})
	if err != nil {
		return fmt.Errorf("failed to discover standard documents in %q: %w", base, err)
	}

	for _, filePath := range files {
		doc, err := parseStandardFile(base, filePath)
		if err != nil {
			logging.Warn("failed to parse standard document",
				logging.Path(filePath),
				logging.Err(err),
			)
			c.Problems = append(c.Problems, Problem{Path: filePath, Err: err})
			continue
		}
		c.Standards = append(c.Standards, doc)
	}

	return nil
}

// SkillByName returns the skill with the given name (case-insensitive).
func (c *Corpus) SkillByName(name string) (model.Skill, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range c.Skills {
		if strings.ToLower(s.Name) == name {
			return s, true
		}
	}
	return model.Skill{}, false
}

// KeywordIndex returns a map of lowercase invocation keyword to the names of
// skills that declare it, with each name list sorted.
func (c *Corpus) KeywordIndex() map[string][]string {
	index := make(map[string][]string)
	for _, s := range c.Skills {
		for _, k := range s.Invocation {
			key := strings.ToLower(strings.TrimSpace(k))
			if key == "" {
				continue
			}
			index[key] = append(index[key], s.Name)
		}
	}
	for _, names := range index {
		sort.Strings(names)
	}
	return index
}

// parseStandardFile loads a standard document. Standards carry no front
// matter; their title comes from the first H1.
func parseStandardFile(base, filePath string) (model.Document, error) {
	// #nosec G304 - filePath comes from directory discovery under the corpus root
	content, err := os.ReadFile(filePath)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}

	section := ""
	if rel, err := filepath.Rel(base, filepath.Dir(filePath)); err == nil && rel != "." {
		section = filepath.ToSlash(rel)
	}

	return model.Document{
		Title:      markdown.Title(content),
		Path:       filePath,
		Section:    section,
		Content:    parser.NormalizeContent(string(content)),
		ModifiedAt: info.ModTime(),
	}, nil
}
