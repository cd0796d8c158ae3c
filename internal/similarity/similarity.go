// Package similarity provides string similarity scoring used for fuzzy
// invocation-keyword matching and keyword collision detection.
package similarity

import (
	"strings"
	"unicode"
)

// Algorithm names accepted by Score.
const (
	AlgorithmLevenshtein = "levenshtein"
	AlgorithmJaroWinkler = "jaro-winkler"
	AlgorithmCombined    = "combined"
)

// Score returns the similarity (0.0-1.0) between two keywords after
// normalization, using the named algorithm. Unknown algorithm names fall
// back to Levenshtein.
func Score(a, b, algorithm string) float64 {
	a = Normalize(a)
	b = Normalize(b)

	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	switch algorithm {
	case AlgorithmJaroWinkler:
		return JaroWinkler(a, b)
	case AlgorithmCombined:
		return max(LevenshteinSimilarity(a, b), JaroWinkler(a, b))
	default:
		return LevenshteinSimilarity(a, b)
	}
}

// Normalize prepares a keyword for comparison: lowercase, separators
// collapsed to single spaces, non-alphanumerics dropped.
func Normalize(s string) string {
	s = strings.ToLower(s)

	var result strings.Builder
	result.Grow(len(s))

	prevSpace := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
			prevSpace = false
		case r == '-' || r == '_' || r == ' ' || r == '.':
			if !prevSpace {
				result.WriteRune(' ')
				prevSpace = true
			}
		}
	}

	return strings.TrimSpace(result.String())
}

// LevenshteinDistance calculates the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change one string
// into another.
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)

	if len(r1) < len(r2) {
		r1, r2 = r2, r1
	}

	// Two rows instead of the full matrix: O(min(m,n)) space.
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// LevenshteinSimilarity returns a normalized similarity score (0.0-1.0)
// based on Levenshtein distance.
func LevenshteinSimilarity(s1, s2 string) float64 {
	if len(s1) == 0 && len(s2) == 0 {
		return 1.0
	}

	distance := LevenshteinDistance(s1, s2)
	maxLen := max(len([]rune(s1)), len([]rune(s2)))

	return 1.0 - float64(distance)/float64(maxLen)
}

// JaroSimilarity calculates the Jaro similarity between two strings.
// Returns a value between 0.0 (no similarity) and 1.0 (identical).
func JaroSimilarity(s1, s2 string) float64 {
	r1 := []rune(s1)
	r2 := []rune(s2)

	if len(r1) == 0 && len(r2) == 0 {
		return 1.0
	}
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}

	// Match window: max(|s1|, |s2|) / 2 - 1
	matchWindow := max(0, max(len(r1), len(r2))/2-1)

	s1Matches := make([]bool, len(r1))
	s2Matches := make([]bool, len(r2))

	matches := 0
	transpositions := 0

	for i := range r1 {
		start := max(0, i-matchWindow)
		end := min(len(r2), i+matchWindow+1)

		for j := start; j < end; j++ {
			if s2Matches[j] || r1[i] != r2[j] {
				continue
			}
			s1Matches[i] = true
			s2Matches[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	k := 0
	for i := range r1 {
		if !s1Matches[i] {
			continue
		}
		for !s2Matches[k] {
			k++
		}
		if r1[i] != r2[k] {
			transpositions++
		}
		k++
	}

	return (float64(matches)/float64(len(r1)) +
		float64(matches)/float64(len(r2)) +
		float64(matches-transpositions/2)/float64(matches)) / 3.0
}

// JaroWinkler calculates the Jaro-Winkler similarity, which gives more
// weight to strings that match from the beginning (good for keywords).
func JaroWinkler(s1, s2 string) float64 {
	jaro := JaroSimilarity(s1, s2)

	r1 := []rune(s1)
	r2 := []rune(s2)

	prefixLen := 0
	maxPrefix := min(4, min(len(r1), len(r2)))
	for i := 0; i < maxPrefix; i++ {
		if r1[i] == r2[i] {
			prefixLen++
		} else {
			break
		}
	}

	const scalingFactor = 0.1
	return jaro + float64(prefixLen)*scalingFactor*(1.0-jaro)
}
