package parser

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverFiles finds all files matching the given patterns under a base
// directory. Patterns are doublestar globs relative to the base directory
// (e.g. "**/SKILL.md", "docs/developer/standard/**/*.md"). Results are
// deduplicated absolute paths in sorted order. A missing base directory is
// not an error; it yields an empty result.
func DiscoverFiles(baseDir string, patterns []string) ([]string, error) {
	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat directory %q: %w", baseDir, err)
	}

	fsys := os.DirFS(baseDir)
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			info, err := fs.Stat(fsys, match)
			if err != nil || info.IsDir() {
				continue
			}

			absPath, err := filepath.Abs(filepath.Join(baseDir, filepath.FromSlash(match)))
			if err != nil {
				return nil, fmt.Errorf("failed to get absolute path for %q: %w", match, err)
			}

			if !seen[absPath] {
				seen[absPath] = true
				files = append(files, absPath)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
