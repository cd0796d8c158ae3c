// Package nix reads the corpus's Nix package-list fragment and checks the
// conventions it is expected to follow: one attribute per line, sorted,
// no duplicates.
package nix

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// PackageList is a parsed `with pkgs; [ ... ]` fragment.
type PackageList struct {
	// Path is the file the list was read from.
	Path string
	// Packages holds the attribute names in file order.
	Packages []string
}

// Issue describes a convention violation in the package list.
type Issue struct {
	Line    int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

// ParseFile reads and parses a package-list fragment from disk.
func ParseFile(path string) (*PackageList, error) {
	// #nosec G304 - path comes from the corpus layout
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package list %q: %w", path, err)
	}

	list, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse package list %q: %w", path, err)
	}
	list.Path = path
	return list, nil
}

// Parse extracts package attribute names from a fragment of the form
// `with pkgs; [ name name ... ]`. Comments (# ...) and blank lines are
// ignored. Only this restricted shape is supported; the fragment is a
// data file, not arbitrary Nix.
func Parse(src string) (*PackageList, error) {
	open := strings.Index(src, "[")
	if open < 0 {
		return nil, fmt.Errorf("no package list found (expected a [ ... ] block)")
	}
	closing := strings.LastIndex(src, "]")
	if closing < open {
		return nil, fmt.Errorf("package list is not terminated (missing ])")
	}

	prefix := strings.TrimSpace(stripComments(src[:open]))
	if prefix != "" && !strings.HasSuffix(prefix, "with pkgs;") {
		return nil, fmt.Errorf("unexpected text before package list: %q", prefix)
	}

	list := &PackageList{}
	for _, line := range strings.Split(src[open+1:closing], "\n") {
		line = strings.TrimSpace(stripComments(line))
		if line == "" {
			continue
		}
		for _, field := range strings.Fields(line) {
			if !isAttrName(field) {
				return nil, fmt.Errorf("invalid package attribute %q", field)
			}
			list.Packages = append(list.Packages, field)
		}
	}

	return list, nil
}

// Verify checks the list conventions: attributes sorted and unique.
func (l *PackageList) Verify() []Issue {
	var issues []Issue

	seen := make(map[string]int) // name -> first line (1-based position)
	for i, pkg := range l.Packages {
		if first, ok := seen[pkg]; ok {
			issues = append(issues, Issue{
				Line:    i + 1,
				Message: fmt.Sprintf("duplicate package %q (first listed at position %d)", pkg, first),
			})
			continue
		}
		seen[pkg] = i + 1
	}

	if !sort.StringsAreSorted(l.Packages) {
		for i := 1; i < len(l.Packages); i++ {
			if l.Packages[i] < l.Packages[i-1] {
				issues = append(issues, Issue{
					Line:    i + 1,
					Message: fmt.Sprintf("package %q is out of order (after %q)", l.Packages[i], l.Packages[i-1]),
				})
			}
		}
	}

	return issues
}

// Format renders the list in canonical form: sorted, deduplicated, one
// attribute per line.
func (l *PackageList) Format() string {
	unique := make([]string, 0, len(l.Packages))
	seen := make(map[string]bool)
	for _, pkg := range l.Packages {
		if !seen[pkg] {
			seen[pkg] = true
			unique = append(unique, pkg)
		}
	}
	sort.Strings(unique)

	var sb strings.Builder
	sb.WriteString("with pkgs; [\n")
	for _, pkg := range unique {
		sb.WriteString("  ")
		sb.WriteString(pkg)
		sb.WriteString("\n")
	}
	sb.WriteString("]\n")
	return sb.String()
}

func stripComments(line string) string {
	if idx := strings.Index(line, "#"); idx >= 0 {
		return line[:idx]
	}
	return line
}

// isAttrName reports whether s looks like a Nix attribute path, such as
// "ripgrep" or "python3Packages.requests".
func isAttrName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			case r >= '0' && r <= '9', r == '-', r == '\'':
				if i == 0 {
					return false
				}
			default:
				return false
			}
		}
	}
	return true
}
