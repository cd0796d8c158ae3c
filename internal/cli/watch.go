package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/lint"
	"github.com/skilldex/skilldex/internal/watch"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Re-lint the corpus on every file change",
		UsageText: "skilldex watch [options]",
		Description: `Watch the corpus tree and re-run the lint rules whenever a
   Markdown or Nix file changes. Stops on Ctrl-C.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat warnings as errors",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			opts := watch.DefaultOptions()
			opts.Corpus = corpus.Options{Layout: cfg.Layout()}
			opts.Lint.Strict = cfg.Lint.Strict || cmd.Bool("strict")
			opts.Lint.CollisionThreshold = cfg.Lint.CollisionThreshold

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			watcher := watch.New(corpusRoot(cmd, cfg), opts)
			err = watcher.Run(ctx, func(c *corpus.Corpus, result *lint.Result) {
				fmt.Printf("\n--- %d skill(s), %d standard(s) ---\n",
					len(c.Skills), len(c.Standards))
				outputLintText(result)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
