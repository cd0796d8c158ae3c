package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/skilldex/skilldex/internal/ui/tui"
)

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "Browse skills interactively",
		UsageText: "skilldex browse",
		Description: `Open an interactive terminal browser over the corpus's skills:
   navigate, filter by name or keyword, and inspect full skill content.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			c, err := loadCorpus(cmd, cfg)
			if err != nil {
				return err
			}

			if len(c.Skills) == 0 {
				fmt.Println("No skills found in corpus", c.Root)
				return nil
			}

			result, err := tui.RunBrowse(c.Skills)
			if err != nil {
				return fmt.Errorf("browse failed: %w", err)
			}

			if result.Action == tui.BrowseActionShow {
				printSkill(result.Skill)
			}
			return nil
		},
	}
}
