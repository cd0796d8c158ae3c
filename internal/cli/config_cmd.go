package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/skilldex/skilldex/internal/config"
	"github.com/skilldex/skilldex/internal/ui"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Display or initialize the configuration",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "init",
				Usage: "Write the default configuration file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Bool("init") {
				path := config.FilePath()
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("configuration file %s already exists", path)
				}
				if err := config.Default().Save(); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Println(ui.StatusPass(fmt.Sprintf("wrote %s", path)))
				return nil
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}

			fmt.Println(ui.Dim(fmt.Sprintf("# %s", config.FilePath())))
			fmt.Print(string(data))
			return nil
		},
	}
}
