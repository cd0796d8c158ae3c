package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/skilldex/skilldex/internal/route"
	"github.com/skilldex/skilldex/internal/ui"
)

func routeCommand() *cli.Command {
	return &cli.Command{
		Name:      "route",
		Usage:     "Find the skills whose invocation keywords match a phrase",
		UsageText: "skilldex route [options] <phrase>",
		Description: `Match a trigger phrase against every skill's invocation keywords.
   Exact keyword matches rank first; near matches are scored by string
   similarity. Document bodies are never searched.

   Examples:
     skilldex route timezones
     skilldex route "pull request review"
     skilldex route --best deploy
     skilldex route --threshold 0.9 tests`,
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "threshold",
				Usage: "Minimum similarity score for fuzzy matches (0.0-1.0)",
			},
			&cli.StringFlag{
				Name:  "algorithm",
				Usage: "Similarity algorithm (levenshtein, jaro-winkler, combined)",
			},
			&cli.BoolFlag{
				Name:  "best",
				Usage: "Print only the single best match",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output matches as JSON for scripting",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if query == "" {
				return fmt.Errorf("route requires a phrase to match")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			c, err := loadCorpus(cmd, cfg)
			if err != nil {
				return err
			}

			rc := route.Config{
				Threshold: cfg.Route.Threshold,
				Algorithm: cfg.Route.Algorithm,
			}
			if cmd.IsSet("threshold") {
				rc.Threshold = cmd.Float("threshold")
			}
			if alg := cmd.String("algorithm"); alg != "" {
				rc.Algorithm = alg
			}

			router := route.New(c.Skills, rc)

			matches := router.Match(query)
			if matches == nil {
				matches = []route.Match{}
			}
			if cmd.Bool("best") && len(matches) > 1 {
				matches = matches[:1]
			}

			if cmd.Bool("json") {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(matches); err != nil {
					return err
				}
				if len(matches) == 0 {
					return cli.Exit("", 1)
				}
				return nil
			}

			if len(matches) == 0 {
				fmt.Printf("No skill matches %q\n", query)
				return cli.Exit("", 1)
			}

			for _, m := range matches {
				marker := ui.StatusPass("")
				via := fmt.Sprintf("keyword %q", m.Keyword)
				if !m.Exact {
					marker = ui.StatusWarning("")
					via = fmt.Sprintf("keyword %q (%.0f%% match)", m.Keyword, m.Score*100)
				}
				fmt.Printf("%s %s\t%s\n", marker, ui.Bold(m.Skill.Name), ui.Dim(via))
				if m.Skill.Description != "" {
					fmt.Printf("    %s\n", m.Skill.Description)
				}
			}
			return nil
		},
	}
}
