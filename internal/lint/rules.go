package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/logging"
	"github.com/skilldex/skilldex/internal/markdown"
	"github.com/skilldex/skilldex/internal/model"
	"github.com/skilldex/skilldex/internal/parser"
	"github.com/skilldex/skilldex/internal/similarity"
)

// Options configures a lint run.
type Options struct {
	// Strict promotes warnings to errors.
	Strict bool
	// SeverityOverrides replaces the default severity per rule id.
	SeverityOverrides map[string]Severity
	// CollisionThreshold is the similarity score above which two invocation
	// keywords from different skills count as a collision. 1.0 limits the
	// check to exact matches.
	CollisionThreshold float64
	// CollisionAlgorithm selects the similarity algorithm for near-duplicate
	// keyword detection.
	CollisionAlgorithm string
}

// DefaultOptions returns the default lint options.
func DefaultOptions() Options {
	return Options{
		CollisionThreshold: 0.9,
		CollisionAlgorithm: similarity.AlgorithmCombined,
	}
}

// Runner executes the rule set over a corpus.
type Runner struct {
	opts Options
}

// NewRunner creates a lint runner.
func NewRunner(opts Options) *Runner {
	if opts.CollisionThreshold <= 0 || opts.CollisionThreshold > 1 {
		opts.CollisionThreshold = 0.9
	}
	if opts.CollisionAlgorithm == "" {
		opts.CollisionAlgorithm = similarity.AlgorithmCombined
	}
	return &Runner{opts: opts}
}

// Run checks every skill and standard document in the corpus.
func (r *Runner) Run(c *corpus.Corpus) *Result {
	defer logging.Timer("lint")()

	result := &Result{
		SkillCount:    len(c.Skills),
		StandardCount: len(c.Standards),
	}

	for _, p := range c.Problems {
		r.add(result, Finding{
			Rule:    RuleParseError,
			Path:    p.Path,
			Message: p.Message(),
		})
	}

	for _, skill := range c.Skills {
		r.checkSkill(result, skill)
	}

	r.checkNameUniqueness(result, c.Skills)
	r.checkKeywordCollisions(result, c.Skills)

	for _, doc := range c.Standards {
		r.checkStandard(result, doc)
	}

	result.Sort()

	logging.Debug("lint complete",
		logging.Count(len(result.Findings)),
		logging.Operation("lint"),
	)

	return result
}

// add applies severity overrides and strict promotion before recording.
func (r *Runner) add(result *Result, f Finding) {
	sev, ok := r.opts.SeverityOverrides[f.Rule]
	if !ok {
		sev = defaultSeverities[f.Rule]
	}
	if r.opts.Strict && sev == SeverityWarning {
		sev = SeverityError
	}
	f.Severity = sev
	result.Add(f)
}

// checkSkill runs the per-skill rules.
func (r *Runner) checkSkill(result *Result, skill model.Skill) {
	if !skill.HasFrontmatter {
		r.add(result, Finding{
			Rule:    RuleFrontmatterRequired,
			Path:    skill.Path,
			Message: "SKILL.md must begin with a front-matter block",
		})
		// Without front matter the field rules would all fire on fallbacks.
		r.checkBody(result, skill.Path, skill.Dir, skill.Content)
		return
	}

	if !skill.NameDeclared {
		r.add(result, Finding{
			Rule:    RuleNameRequired,
			Path:    skill.Path,
			Message: "front matter must declare a non-empty name",
		})
	} else {
		if err := parser.ValidateSkillName(skill.Name); err != nil {
			r.add(result, Finding{
				Rule:    RuleNameFormat,
				Path:    skill.Path,
				Message: err.Error(),
			})
		}
		if dirName := filepath.Base(skill.Dir); dirName != skill.Name {
			r.add(result, Finding{
				Rule:    RuleNameMatchesDir,
				Path:    skill.Path,
				Message: fmt.Sprintf("skill name %q does not match directory name %q", skill.Name, dirName),
			})
		}
	}

	if strings.TrimSpace(skill.Description) == "" {
		r.add(result, Finding{
			Rule:    RuleDescriptionRequired,
			Path:    skill.Path,
			Message: "front matter must declare a non-empty description",
		})
	}

	if len(skill.Invocation) == 0 {
		r.add(result, Finding{
			Rule:    RuleInvocationRequired,
			Path:    skill.Path,
			Message: "front matter must declare at least one invocation keyword",
		})
	} else {
		seen := make(map[string]bool)
		for _, k := range skill.Invocation {
			key := strings.ToLower(strings.TrimSpace(k))
			if seen[key] {
				r.add(result, Finding{
					Rule:    RuleInvocationDuplicate,
					Path:    skill.Path,
					Message: fmt.Sprintf("duplicate invocation keyword %q", k),
				})
			}
			seen[key] = true
		}
	}

	for _, extra := range skill.ExtraFiles {
		r.add(result, Finding{
			Rule:    RuleCompanionNaming,
			Path:    skill.Path,
			Message: fmt.Sprintf("unconventional file %q in skill directory (expected SKILL.md, reference.md, examples.md)", extra),
		})
	}

	r.checkBody(result, skill.Path, skill.Dir, skill.Content)
}

// checkStandard runs the standard-document rules.
func (r *Runner) checkStandard(result *Result, doc model.Document) {
	if doc.Title == "" {
		r.add(result, Finding{
			Rule:    RuleTitleRequired,
			Path:    doc.Path,
			Message: "standard document must start with a level-1 heading",
		})
	}

	r.checkBody(result, doc.Path, filepath.Dir(doc.Path), doc.Content)
}

// checkBody runs the Markdown structure rules shared by both document kinds.
func (r *Runner) checkBody(result *Result, path, dir, content string) {
	analysis := markdown.Analyze([]byte(content))

	for _, link := range analysis.RelativeLinks() {
		target := filepath.Join(dir, filepath.FromSlash(link))
		if _, err := os.Stat(target); err != nil {
			r.add(result, Finding{
				Rule:    RuleLinkBroken,
				Path:    path,
				Message: fmt.Sprintf("link target %q does not exist", link),
			})
		}
	}

	for _, block := range analysis.CodeBlocks {
		if block.Language == "" {
			r.add(result, Finding{
				Rule:    RuleCodeFenceLanguage,
				Path:    path,
				Line:    block.Line,
				Message: "fenced code block has no language tag",
			})
		}
	}
}

// checkNameUniqueness reports duplicate skill names across the corpus.
func (r *Runner) checkNameUniqueness(result *Result, skills []model.Skill) {
	seen := make(map[string]string) // lowercase name -> first path
	for _, skill := range skills {
		key := strings.ToLower(skill.Name)
		if first, ok := seen[key]; ok {
			r.add(result, Finding{
				Rule:    RuleSkillNameUnique,
				Path:    skill.Path,
				Message: fmt.Sprintf("skill name %q already used by %s", skill.Name, first),
			})
			continue
		}
		seen[key] = skill.Path
	}
}

// checkKeywordCollisions reports invocation keywords claimed by more than
// one skill, including near-duplicates above the similarity threshold.
func (r *Runner) checkKeywordCollisions(result *Result, skills []model.Skill) {
	type claimed struct {
		keyword string
		skill   model.Skill
	}

	var all []claimed
	for _, skill := range skills {
		for _, k := range skill.Invocation {
			if strings.TrimSpace(k) == "" {
				continue
			}
			all = append(all, claimed{keyword: k, skill: skill})
		}
	}

	// Pairwise comparison; keyword counts are small.
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if all[i].skill.Name == all[j].skill.Name {
				continue
			}

			score := similarity.Score(all[i].keyword, all[j].keyword, r.opts.CollisionAlgorithm)
			if score < r.opts.CollisionThreshold {
				continue
			}

			msg := fmt.Sprintf("invocation keyword %q collides with %q declared by skill %q",
				all[i].keyword, all[j].keyword, all[j].skill.Name)
			if score >= 1.0 {
				msg = fmt.Sprintf("invocation keyword %q is also declared by skill %q",
					all[i].keyword, all[j].skill.Name)
			}

			r.add(result, Finding{
				Rule:    RuleKeywordCollision,
				Path:    all[i].skill.Path,
				Message: msg,
			})
		}
	}
}
