package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/skilldex/skilldex/internal/lint"
	"github.com/skilldex/skilldex/internal/ui"
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Check the corpus against the structural rules",
		UsageText: "skilldex lint [options]",
		Description: `Run every structural rule over the corpus: skill front matter
   (name, description, invocation keywords), file naming, cross-skill
   keyword collisions, relative links, and standard document titles.

   Exit status is non-zero when any error-severity finding remains.

   Examples:
     skilldex lint
     skilldex lint --strict
     skilldex lint --severity code-fence-language=error
     skilldex lint --json | jq '.findings[].rule'`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat warnings as errors",
			},
			&cli.StringSliceFlag{
				Name:  "severity",
				Usage: "Override a rule severity as rule=error|warning (repeatable)",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output findings as JSON for scripting",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			c, err := loadCorpus(cmd, cfg)
			if err != nil {
				return err
			}

			opts := lint.DefaultOptions()
			opts.Strict = cfg.Lint.Strict || cmd.Bool("strict")
			opts.CollisionThreshold = cfg.Lint.CollisionThreshold

			overrides, err := severityOverrides(cfg.Lint.Severity, cmd.StringSlice("severity"))
			if err != nil {
				return err
			}
			opts.SeverityOverrides = overrides

			result := lint.NewRunner(opts).Run(c)

			if cmd.Bool("json") {
				if err := outputLintJSON(result); err != nil {
					return err
				}
			} else {
				outputLintText(result)
			}

			if result.HasErrors() {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// severityOverrides merges config-file overrides with --severity flags; the
// flag wins on conflict.
func severityOverrides(fromConfig map[string]string, fromFlags []string) (map[string]lint.Severity, error) {
	overrides := make(map[string]lint.Severity)

	for rule, level := range fromConfig {
		sev, err := lint.ParseSeverity(level)
		if err != nil {
			return nil, fmt.Errorf("invalid severity for rule %q in config: %w", rule, err)
		}
		overrides[rule] = sev
	}

	for _, spec := range fromFlags {
		rule, level, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --severity %q (expected rule=error|warning)", spec)
		}
		sev, err := lint.ParseSeverity(level)
		if err != nil {
			return nil, fmt.Errorf("invalid --severity %q: %w", spec, err)
		}
		overrides[strings.TrimSpace(rule)] = sev
	}

	return overrides, nil
}

func outputLintJSON(result *lint.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Findings      []lint.Finding `json:"findings"`
		Errors        int            `json:"errors"`
		Warnings      int            `json:"warnings"`
		SkillCount    int            `json:"skill_count"`
		StandardCount int            `json:"standard_count"`
		Passed        bool           `json:"passed"`
	}{
		Findings:      result.Findings,
		Errors:        len(result.Errors()),
		Warnings:      len(result.Warnings()),
		SkillCount:    result.SkillCount,
		StandardCount: result.StandardCount,
		Passed:        result.Passed(),
	})
}

func outputLintText(result *lint.Result) {
	for _, f := range result.Findings {
		line := f.String()
		switch f.Severity {
		case lint.SeverityError:
			fmt.Println(ui.StatusFail(line))
		default:
			fmt.Println(ui.StatusWarning(line))
		}
	}

	if len(result.Findings) > 0 {
		fmt.Println()
	}

	if result.HasErrors() {
		fmt.Println(ui.Error(result.Summary()))
	} else if len(result.Warnings()) > 0 {
		fmt.Println(ui.Warning(result.Summary()))
	} else {
		fmt.Println(ui.StatusPass(result.Summary()))
	}
}
