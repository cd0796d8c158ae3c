package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/skilldex/skilldex/internal/export"
	"github.com/skilldex/skilldex/internal/model"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export the corpus catalog",
		UsageText: "skilldex export [options]",
		Description: `Serialize the corpus catalog for machine consumption or as a
   Markdown index.

   Examples:
     skilldex export
     skilldex export --format yaml --output catalog.yaml
     skilldex export --format markdown --kind skills
     skilldex export --content | jq '.skills[0].content'`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (json, yaml, markdown)",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to a file instead of stdout",
			},
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Limit to one kind (skill, standard)",
			},
			&cli.BoolFlag{
				Name:  "content",
				Usage: "Include full document bodies",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Disable pretty-printing",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			format, err := export.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			var kind model.DocKind
			if k := cmd.String("kind"); k != "" {
				kind, err = model.ParseKind(k)
				if err != nil {
					return err
				}
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			c, err := loadCorpus(cmd, cfg)
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if path := cmd.String("output"); path != "" {
				// #nosec G304 - output path is provided by the user
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			exporter := export.New(export.Options{
				Format:         format,
				Pretty:         !cmd.Bool("compact"),
				IncludeContent: cmd.Bool("content"),
				Kind:           kind,
			})

			return exporter.Export(c, w)
		},
	}
}
