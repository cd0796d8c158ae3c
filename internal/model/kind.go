package model

import (
	"fmt"
	"strings"
)

// DocKind distinguishes the two document families the corpus holds.
type DocKind string

const (
	// KindSkill is a skill guide: SKILL.md with front matter plus optional
	// reference.md and examples.md companions.
	KindSkill DocKind = "skill"

	// KindStandard is a long-form standard document under the standards
	// directory, without front matter.
	KindStandard DocKind = "standard"
)

// IsValid returns true if the kind is recognized.
func (k DocKind) IsValid() bool {
	switch k {
	case KindSkill, KindStandard:
		return true
	default:
		return false
	}
}

// AllKinds returns all supported document kinds.
func AllKinds() []DocKind {
	return []DocKind{KindSkill, KindStandard}
}

// String returns the string representation of the kind.
func (k DocKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k DocKind) Description() string {
	switch k {
	case KindSkill:
		return "Skill guide with front matter and invocation keywords"
	case KindStandard:
		return "Long-form standard document"
	default:
		return "Unknown document kind"
	}
}

// ParseKind converts a string to a DocKind.
// Returns an error if the kind is not recognized; an empty string is an error
// because callers that accept "all kinds" pass no filter instead.
func ParseKind(s string) (DocKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	k := DocKind(normalized)
	if k.IsValid() {
		return k, nil
	}

	// Common aliases
	switch normalized {
	case "skills":
		return KindSkill, nil
	case "standards", "doc", "docs":
		return KindStandard, nil
	default:
		return "", fmt.Errorf("unknown document kind %q (valid: skill, standard)", s)
	}
}
