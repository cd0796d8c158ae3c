// Package cli provides the command-line interface for skilldex.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/skilldex/skilldex/internal/cache"
	"github.com/skilldex/skilldex/internal/config"
	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/logging"
	"github.com/skilldex/skilldex/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "skilldex",
		Usage:   "Lint, index, and route a skills-and-standards documentation corpus",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "corpus",
				Aliases: []string{"C"},
				Usage:   "Corpus root directory (overrides configuration)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a configuration file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureColors(cmd)
			return ctx, configureLogging(cmd)
		},
		Commands: []*cli.Command{
			versionCommand(),
			configCommand(),
			lintCommand(),
			listCommand(),
			showCommand(),
			routeCommand(),
			exportCommand(),
			statsCommand(),
			newCommand(),
			browseCommand(),
			watchCommand(),
			nixCommand(),
		},
	}
	return app.Run(ctx, args)
}

// configureColors sets up color output based on CLI flags.
func configureColors(cmd *cli.Command) {
	if cmd.Bool("no-color") {
		ui.DisableColors()
	}
}

// configureLogging sets up the logging level based on CLI flags.
func configureLogging(cmd *cli.Command) error {
	opts := logging.DefaultOptions()

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") {
		opts.Level = slog.LevelInfo
	} else {
		opts.Level = slog.LevelWarn
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return nil
}

// loadConfig loads the configuration, honoring the --config flag.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		cfg, err := config.LoadFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %q: %w", path, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// corpusRoot resolves the corpus root from the --corpus flag or config.
func corpusRoot(cmd *cli.Command, cfg *config.Config) string {
	if root := cmd.String("corpus"); root != "" {
		return root
	}
	cwd, _ := os.Getwd()
	return cfg.CorpusRoot(cwd)
}

// loadCorpus loads the corpus per flags and config, wiring the parse cache
// when enabled.
func loadCorpus(cmd *cli.Command, cfg *config.Config) (*corpus.Corpus, error) {
	root := corpusRoot(cmd, cfg)

	opts := corpus.Options{Layout: cfg.Layout()}

	var pc *cache.Cache
	if cfg.Cache.Enabled {
		var err error
		pc, err = cache.New("corpus", cfg.Cache.Location)
		if err != nil {
			logging.Warn("parse cache unavailable", logging.Err(err))
		} else {
			pc.Prune(cfg.Cache.TTL)
			opts.Cache = pc
		}
	}

	c, err := corpus.Load(root, opts)
	if err != nil {
		return nil, err
	}

	if pc != nil {
		if err := pc.Save(); err != nil {
			logging.Warn("failed to save parse cache", logging.Err(err))
		}
	}

	return c, nil
}
