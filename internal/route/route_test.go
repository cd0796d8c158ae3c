package route

import (
	"testing"

	"github.com/skilldex/skilldex/internal/model"
)

func routerSkills() []model.Skill {
	return []model.Skill{
		{Name: "datetime", Invocation: []string{"dates", "timezones", "iso8601"}},
		{Name: "error-handling", Invocation: []string{"errors", "result-types"}},
		{Name: "testing", Invocation: []string{"tests", "test-doubles"}},
		{Name: "validation", Invocation: []string{"validators", "input-checking"}},
	}
}

func TestMatchExact(t *testing.T) {
	r := New(routerSkills(), DefaultConfig())

	matches := r.Match("dates")
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].Skill.Name != "datetime" {
		t.Errorf("best match = %q, want %q", matches[0].Skill.Name, "datetime")
	}
	if !matches[0].Exact || matches[0].Score != 1.0 {
		t.Errorf("exact match expected, got %+v", matches[0])
	}
}

func TestMatchCaseAndSeparatorInsensitive(t *testing.T) {
	r := New(routerSkills(), DefaultConfig())

	matches := r.Match("Result Types")
	if len(matches) == 0 {
		t.Fatal("expected a match")
	}
	if matches[0].Skill.Name != "error-handling" || !matches[0].Exact {
		t.Errorf("got %+v, want exact match on error-handling", matches[0])
	}
}

func TestMatchFuzzy(t *testing.T) {
	r := New(routerSkills(), DefaultConfig())

	matches := r.Match("timezone")
	if len(matches) == 0 {
		t.Fatal("expected a fuzzy match for singular form")
	}
	if matches[0].Skill.Name != "datetime" {
		t.Errorf("best match = %q, want %q", matches[0].Skill.Name, "datetime")
	}
	if matches[0].Exact {
		t.Error("singular form should be fuzzy, not exact")
	}
	if matches[0].Score < 0.75 {
		t.Errorf("score = %f, want >= threshold", matches[0].Score)
	}
}

func TestMatchNoResults(t *testing.T) {
	r := New(routerSkills(), DefaultConfig())

	if matches := r.Match("kubernetes"); len(matches) != 0 {
		t.Errorf("unexpected matches: %v", matches)
	}
	if matches := r.Match(""); matches != nil {
		t.Errorf("empty query should return nil, got %v", matches)
	}
	if matches := r.Match("   "); matches != nil {
		t.Errorf("blank query should return nil, got %v", matches)
	}
}

func TestMatchOnePerSkill(t *testing.T) {
	skills := []model.Skill{
		{Name: "datetime", Invocation: []string{"date", "dates", "dating"}},
	}
	r := New(skills, DefaultConfig())

	matches := r.Match("dates")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1 per skill", len(matches))
	}
	if matches[0].Keyword != "dates" {
		t.Errorf("keyword = %q, want best keyword %q", matches[0].Keyword, "dates")
	}
}

func TestMatchOrdering(t *testing.T) {
	skills := []model.Skill{
		{Name: "zeta", Invocation: []string{"shared"}},
		{Name: "alpha", Invocation: []string{"shared"}},
	}
	r := New(skills, DefaultConfig())

	matches := r.Match("shared")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	// Equal score and exactness: name ascending breaks the tie.
	if matches[0].Skill.Name != "alpha" {
		t.Errorf("tie-break order wrong: %q before %q", matches[0].Skill.Name, matches[1].Skill.Name)
	}
}

func TestBest(t *testing.T) {
	r := New(routerSkills(), DefaultConfig())

	best, ok := r.Best("tests")
	if !ok {
		t.Fatal("expected a best match")
	}
	if best.Skill.Name != "testing" {
		t.Errorf("best = %q, want %q", best.Skill.Name, "testing")
	}

	if _, ok := r.Best("nothing-matches-this"); ok {
		t.Error("expected no best match")
	}
}

func TestNewClampsConfig(t *testing.T) {
	r := New(routerSkills(), Config{Threshold: 5, Algorithm: ""})
	if r.config.Threshold != 0.75 {
		t.Errorf("threshold = %f, want default clamp", r.config.Threshold)
	}
	if r.config.Algorithm == "" {
		t.Error("algorithm should default")
	}
}
