package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/markdown"
	"github.com/skilldex/skilldex/internal/model"
	"github.com/skilldex/skilldex/internal/ui"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List skills and standard documents in the corpus",
		UsageText: "skilldex list [options] [kind]",
		Description: `List corpus entries. The optional kind argument limits output to
   "skill" or "standard" entries.

   Examples:
     skilldex list
     skilldex list skills
     skilldex list standards --json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON for scripting",
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

			var kind model.DocKind
			if arg := cmd.Args().First(); arg != "" {
				kind, err = model.ParseKind(arg)
				if err != nil {
					return err
				}
			}

			if cmd.Bool("json") {
				return outputListJSON(c, kind)
			}
			outputListText(c, kind)
			return nil
		},
	}
}

func outputListJSON(c *corpus.Corpus, kind model.DocKind) error {
	out := struct {
		Skills    []model.Skill    `json:"skills,omitempty"`
		Standards []model.Document `json:"standards,omitempty"`
	}{}
	if kind == "" || kind == model.KindSkill {
		out.Skills = c.Skills
	}
	if kind == "" || kind == model.KindStandard {
		out.Standards = c.Standards
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputListText(c *corpus.Corpus, kind model.DocKind) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	if kind == "" || kind == model.KindSkill {
		fmt.Fprintln(w, ui.Header("NAME\tKEYWORDS\tCOMPANIONS\tDESCRIPTION"))
		for _, s := range c.Skills {
			companions := "-"
			if files := s.Companions(); len(files) > 0 {
				companions = fmt.Sprintf("%d", len(files))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				s.Name,
				ui.Keyword(s.DisplayKeywords()),
				companions,
				s.Description,
			)
		}
		_ = w.Flush()
		fmt.Printf("\n%d skill(s)\n", len(c.Skills))
	}

	if kind == "" || kind == model.KindStandard {
		if kind == "" {
			fmt.Println()
		}
		fmt.Fprintln(w, ui.Header("TITLE\tSECTION\tPATH"))
		for _, d := range c.Standards {
			section := d.Section
			if section == "" {
				section = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				d.DisplayTitle(),
				section,
				ui.Dim(d.Path),
			)
		}
		_ = w.Flush()
		fmt.Printf("\n%d standard(s)\n", len(c.Standards))
	}

	for _, p := range c.Problems {
		fmt.Println(ui.StatusWarning(fmt.Sprintf("skipped %s: %s", p.Path, p.Message())))
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one skill with its front matter and body",
		UsageText: "skilldex show <skill-name>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON for scripting",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("show requires a skill name")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			c, err := loadCorpus(cmd, cfg)
			if err != nil {
				return err
			}

			skill, ok := c.SkillByName(name)
			if !ok {
				return fmt.Errorf("skill %q not found in corpus %s", name, c.Root)
			}

			if cmd.Bool("json") {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(skill)
			}

			printSkill(skill)
			return nil
		},
	}
}

func printSkill(skill model.Skill) {
	fmt.Println(ui.Bold(skill.Name))
	if skill.Description != "" {
		fmt.Printf("  %s\n", skill.Description)
	}
	fmt.Printf("  Keywords: %s\n", ui.Keyword(skill.DisplayKeywords()))
	fmt.Printf("  Path: %s\n", ui.Dim(skill.Path))
	if companions := skill.Companions(); len(companions) > 0 {
		fmt.Printf("  Companions: %v\n", companions)
	}
	for key, val := range skill.Metadata {
		fmt.Printf("  %s: %s\n", key, val)
	}
	if outline := skillOutline(skill); outline != "" {
		fmt.Println()
		fmt.Println(ui.Header("Outline"))
		fmt.Print(outline)
	}
	if skill.Content != "" {
		fmt.Println()
		fmt.Println(skill.Content)
	}
}

// skillOutline renders the body's headings indented by level.
func skillOutline(skill model.Skill) string {
	headings := markdown.Analyze([]byte(skill.Content)).Headings
	if len(headings) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, h := range headings {
		sb.WriteString(strings.Repeat("  ", h.Level))
		sb.WriteString(h.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
