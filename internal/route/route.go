// Package route maps a trigger phrase to skills via their declared
// invocation keywords. Exact keyword matches rank first; fuzzy matches are
// scored by string similarity above a configured threshold. Document bodies
// are never searched.
package route

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/skilldex/skilldex/internal/logging"
	"github.com/skilldex/skilldex/internal/model"
	"github.com/skilldex/skilldex/internal/similarity"
)

// Match is a skill matched to a query through one of its keywords.
type Match struct {
	Skill   model.Skill `json:"skill"`
	Keyword string      `json:"keyword"`
	Score   float64     `json:"score"`
	Exact   bool        `json:"exact"`
}

// Config configures routing behavior.
type Config struct {
	// Threshold is the minimum similarity score (0.0-1.0) for fuzzy matches.
	Threshold float64
	// Algorithm selects the similarity algorithm for fuzzy matching.
	Algorithm string
}

// DefaultConfig returns sensible routing defaults.
func DefaultConfig() Config {
	return Config{
		Threshold: 0.75,
		Algorithm: similarity.AlgorithmCombined,
	}
}

// Router routes queries against a fixed set of skills.
type Router struct {
	skills []model.Skill
	config Config
}

// New creates a router over the given skills.
func New(skills []model.Skill, config Config) *Router {
	if config.Threshold <= 0 || config.Threshold > 1 {
		config.Threshold = 0.75
	}
	if config.Algorithm == "" {
		config.Algorithm = similarity.AlgorithmCombined
	}
	return &Router{skills: skills, config: config}
}

// Match returns skills whose invocation keywords match the query, ranked by
// exactness, then score descending, then skill name ascending. Each skill
// appears at most once, represented by its best-matching keyword.
func (r *Router) Match(query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	logging.Debug("routing query",
		logging.Query(query),
		logging.Count(len(r.skills)),
		slog.Float64("threshold", r.config.Threshold),
	)

	normalized := similarity.Normalize(query)

	var matches []Match
	for _, skill := range r.skills {
		if m, ok := r.bestKeyword(skill, normalized); ok {
			matches = append(matches, m)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Exact != matches[j].Exact {
			return matches[i].Exact
		}
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return strings.ToLower(matches[i].Skill.Name) < strings.ToLower(matches[j].Skill.Name)
	})

	logging.Debug("routing complete",
		logging.Query(query),
		slog.Int("matches", len(matches)),
	)

	return matches
}

// Best returns the single best match for a query, if any.
func (r *Router) Best(query string) (Match, bool) {
	matches := r.Match(query)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// bestKeyword scores every keyword a skill declares against the query and
// keeps the best one at or above the threshold.
func (r *Router) bestKeyword(skill model.Skill, normalizedQuery string) (Match, bool) {
	best := Match{Skill: skill}
	found := false

	for _, keyword := range skill.Invocation {
		normalizedKeyword := similarity.Normalize(keyword)
		if normalizedKeyword == "" {
			continue
		}

		if normalizedKeyword == normalizedQuery {
			return Match{Skill: skill, Keyword: keyword, Score: 1.0, Exact: true}, true
		}

		score := similarity.Score(normalizedKeyword, normalizedQuery, r.config.Algorithm)
		if score >= r.config.Threshold && (!found || score > best.Score) {
			best.Keyword = keyword
			best.Score = score
			found = true
		}
	}

	return best, found
}
