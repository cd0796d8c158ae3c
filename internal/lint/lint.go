// Package lint validates the structural conventions of a documentation
// corpus: skill front matter, naming, companion files, link integrity, and
// standard-document structure.
package lint

import (
	"fmt"
	"sort"
	"strings"
)

// Severity classifies a finding.
type Severity string

const (
	// SeverityError findings fail the lint run.
	SeverityError Severity = "error"
	// SeverityWarning findings are reported but do not fail the run.
	SeverityWarning Severity = "warning"
)

// IsValid returns true if the severity is recognized.
func (s Severity) IsValid() bool {
	return s == SeverityError || s == SeverityWarning
}

// ParseSeverity converts a string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.IsValid() {
		return "", fmt.Errorf("unknown severity %q (valid: error, warning)", s)
	}
	return sev, nil
}

// Rule identifiers.
const (
	RuleParseError          = "parse-error"
	RuleFrontmatterRequired = "frontmatter-required"
	RuleNameRequired        = "name-required"
	RuleNameFormat          = "name-format"
	RuleNameMatchesDir      = "name-matches-dir"
	RuleDescriptionRequired = "description-required"
	RuleInvocationRequired  = "invocation-required"
	RuleInvocationDuplicate = "invocation-duplicate"
	RuleSkillNameUnique     = "skill-name-unique"
	RuleKeywordCollision    = "keyword-collision"
	RuleLinkBroken          = "link-broken"
	RuleCodeFenceLanguage   = "code-fence-language"
	RuleCompanionNaming     = "companion-naming"
	RuleTitleRequired       = "title-required"
)

// defaultSeverities maps each rule to its default severity.
var defaultSeverities = map[string]Severity{
	RuleParseError:          SeverityError,
	RuleFrontmatterRequired: SeverityError,
	RuleNameRequired:        SeverityError,
	RuleNameFormat:          SeverityError,
	RuleNameMatchesDir:      SeverityWarning,
	RuleDescriptionRequired: SeverityError,
	RuleInvocationRequired:  SeverityError,
	RuleInvocationDuplicate: SeverityError,
	RuleSkillNameUnique:     SeverityError,
	RuleKeywordCollision:    SeverityWarning,
	RuleLinkBroken:          SeverityError,
	RuleCodeFenceLanguage:   SeverityWarning,
	RuleCompanionNaming:     SeverityWarning,
	RuleTitleRequired:       SeverityError,
}

// Finding is a single lint diagnostic.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
	// Line is the 1-based source line when known, 0 otherwise.
	Line int `json:"line,omitempty"`
}

// String formats the finding for terminal output.
func (f Finding) String() string {
	loc := f.Path
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.Path, f.Line)
	}
	return fmt.Sprintf("%s: %s: %s [%s]", loc, f.Severity, f.Message, f.Rule)
}

// Result aggregates the findings of a lint run.
type Result struct {
	Findings []Finding `json:"findings"`
	// SkillCount and StandardCount record what was examined.
	SkillCount    int `json:"skill_count"`
	StandardCount int `json:"standard_count"`
}

// Add appends a finding.
func (r *Result) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// Errors returns findings with error severity.
func (r *Result) Errors() []Finding {
	return r.filter(SeverityError)
}

// Warnings returns findings with warning severity.
func (r *Result) Warnings() []Finding {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// HasErrors returns true if any finding has error severity.
func (r *Result) HasErrors() bool {
	return len(r.Errors()) > 0
}

// Passed returns true if the run produced no error findings.
func (r *Result) Passed() bool {
	return !r.HasErrors()
}

// Summary returns a human-readable one-line summary.
func (r *Result) Summary() string {
	errs := len(r.Errors())
	warns := len(r.Warnings())

	switch {
	case errs == 0 && warns == 0:
		return fmt.Sprintf("All checks passed (%d skill(s), %d standard(s))", r.SkillCount, r.StandardCount)
	case errs == 0:
		return fmt.Sprintf("Passed with %d warning(s)", warns)
	default:
		return fmt.Sprintf("Failed with %d error(s) and %d warning(s)", errs, warns)
	}
}

// Sort orders findings by path, then line, then rule, for stable output.
func (r *Result) Sort() {
	sort.Slice(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
}
