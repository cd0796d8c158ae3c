package parser

import (
	"fmt"
	"strings"
)

// ValidateSkillName checks if a skill name follows the corpus naming
// convention: lowercase kebab-case, starting with a letter.
func ValidateSkillName(name string) error {
	if name == "" {
		return fmt.Errorf("skill name cannot be empty")
	}

	if strings.TrimSpace(name) != name {
		return fmt.Errorf("skill name cannot have leading/trailing whitespace: %q", name)
	}

	first := rune(name[0])
	if first < 'a' || first > 'z' {
		return fmt.Errorf("skill name must start with a lowercase letter: %q", name)
	}

	if strings.HasSuffix(name, "-") {
		return fmt.Errorf("skill name cannot end with a hyphen: %q", name)
	}
	if strings.Contains(name, "--") {
		return fmt.Errorf("skill name cannot contain consecutive hyphens: %q", name)
	}

	for _, r := range name {
		if !isValidNameChar(r) {
			return fmt.Errorf("skill name contains invalid character %q: %q", r, name)
		}
	}

	return nil
}

// isValidNameChar returns true if the rune is valid in a skill name.
func isValidNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') ||
		r == '-'
}

// NormalizeContent trims surrounding whitespace and normalizes line endings.
func NormalizeContent(content string) string {
	trimmed := strings.TrimSpace(content)
	return strings.ReplaceAll(trimmed, "\r\n", "\n")
}
