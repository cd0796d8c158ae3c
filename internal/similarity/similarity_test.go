package similarity

import (
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := map[string]struct {
		s1   string
		s2   string
		want int
	}{
		"identical":    {s1: "dates", s2: "dates", want: 0},
		"empty first":  {s1: "", s2: "abc", want: 3},
		"empty second": {s1: "abc", s2: "", want: 3},
		"substitution": {s1: "dates", s2: "gates", want: 1},
		"insertion":    {s1: "date", s2: "dates", want: 1},
		"deletion":     {s1: "dates", s2: "date", want: 1},
		"unrelated":    {s1: "abc", s2: "xyz", want: 3},
		"unicode":      {s1: "café", s2: "cafe", want: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.want {
				t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
			}
		})
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	if got := LevenshteinSimilarity("dates", "dates"); got != 1.0 {
		t.Errorf("identical strings should score 1.0, got %f", got)
	}
	if got := LevenshteinSimilarity("", ""); got != 1.0 {
		t.Errorf("two empty strings should score 1.0, got %f", got)
	}
	got := LevenshteinSimilarity("dates", "date")
	if got <= 0.7 || got >= 1.0 {
		t.Errorf("near match score = %f, want in (0.7, 1.0)", got)
	}
}

func TestJaroWinkler(t *testing.T) {
	if got := JaroWinkler("dates", "dates"); got != 1.0 {
		t.Errorf("identical strings should score 1.0, got %f", got)
	}
	if got := JaroSimilarity("abc", "xyz"); got != 0.0 {
		t.Errorf("disjoint strings should score 0.0, got %f", got)
	}

	// Jaro-Winkler favors common prefixes.
	prefix := JaroWinkler("timezone", "timezones")
	noPrefix := JaroWinkler("timezone", "ezonetims")
	if prefix <= noPrefix {
		t.Errorf("prefix match (%f) should beat shuffled match (%f)", prefix, noPrefix)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"lowercase":        {input: "TimeZones", want: "timezones"},
		"kebab":            {input: "error-handling", want: "error handling"},
		"snake":            {input: "error_handling", want: "error handling"},
		"collapse":         {input: "a--b__c", want: "a b c"},
		"punctuation":      {input: "dates!", want: "dates"},
		"surrounding seps": {input: "-dates-", want: "dates"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	// Normalization makes kebab and snake case equivalent.
	if got := Score("error-handling", "error_handling", AlgorithmCombined); got != 1.0 {
		t.Errorf("normalized equal keywords should score 1.0, got %f", got)
	}

	if got := Score("", "dates", AlgorithmCombined); got != 0.0 {
		t.Errorf("empty keyword should score 0.0, got %f", got)
	}

	// Combined takes the better of the two algorithms.
	lev := Score("timezones", "timezone", AlgorithmLevenshtein)
	jw := Score("timezones", "timezone", AlgorithmJaroWinkler)
	combined := Score("timezones", "timezone", AlgorithmCombined)
	if combined < lev || combined < jw {
		t.Errorf("combined (%f) should be >= lev (%f) and jw (%f)", combined, lev, jw)
	}

	// Unknown algorithm falls back to Levenshtein.
	if got := Score("timezones", "timezone", "bogus"); got != lev {
		t.Errorf("fallback score = %f, want %f", got, lev)
	}
}
