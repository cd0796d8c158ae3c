package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/skilldex/skilldex/internal/scaffold"
	"github.com/skilldex/skilldex/internal/ui"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Scaffold a new skill or standard document",
		UsageText: "skilldex new <skill-name> [options]",
		Description: `Create a new skill directory with a SKILL.md that already passes
   the structural lint rules, plus optional companion stubs.

   Examples:
     skilldex new code-review --description "How to review PRs" --keyword review
     skilldex new datetime -d "Datetime conventions" -k dates -k timezones --reference
     skilldex new standard error-handling -d "Error handling rules" --section go`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "description",
				Aliases:  []string{"d"},
				Usage:    "One-line description for the front matter",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "keyword",
				Aliases: []string{"k"},
				Usage:   "Invocation keyword (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "reference",
				Usage: "Also create a reference.md stub",
			},
			&cli.BoolFlag{
				Name:  "examples",
				Usage: "Also create an examples.md stub",
			},
		},
		Commands: []*cli.Command{
			newStandardCommand(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("new requires a skill name")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			generator, err := scaffold.New()
			if err != nil {
				return err
			}

			skillsDir := filepath.Join(corpusRoot(cmd, cfg), cfg.Layout().SkillsDir)
			data := scaffold.Data{
				Name:          name,
				Description:   cmd.String("description"),
				Invocation:    cmd.StringSlice("keyword"),
				WithReference: cmd.Bool("reference"),
				WithExamples:  cmd.Bool("examples"),
			}

			skillPath, err := generator.CreateSkill(skillsDir, data)
			if err != nil {
				return err
			}

			fmt.Println(ui.StatusPass(fmt.Sprintf("created %s", skillPath)))
			return nil
		},
	}
}

func newStandardCommand() *cli.Command {
	return &cli.Command{
		Name:      "standard",
		Usage:     "Scaffold a new standard document",
		UsageText: "skilldex new standard <name> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "description",
				Aliases:  []string{"d"},
				Usage:    "One-line summary placed under the title",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "section",
				Usage: "Subdirectory under the standards tree",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("new standard requires a document name")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			generator, err := scaffold.New()
			if err != nil {
				return err
			}

			dir := filepath.Join(corpusRoot(cmd, cfg), cfg.Layout().StandardsDir)
			if section := cmd.String("section"); section != "" {
				dir = filepath.Join(dir, section)
			}
			path := filepath.Join(dir, name+".md")

			data := scaffold.Data{
				Name:        name,
				Description: cmd.String("description"),
			}
			if err := generator.CreateStandard(path, data); err != nil {
				return err
			}

			fmt.Println(ui.StatusPass(fmt.Sprintf("created %s", path)))
			return nil
		},
	}
}
