package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/skilldex/skilldex/internal/nix"
	"github.com/skilldex/skilldex/internal/ui"
)

func nixCommand() *cli.Command {
	return &cli.Command{
		Name:  "nix",
		Usage: "Work with the corpus's Nix package-list fragment",
		Commands: []*cli.Command{
			nixVerifyCommand(),
			nixFmtCommand(),
		},
	}
}

func nixVerifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check that the package list is sorted and duplicate-free",
		UsageText: "skilldex nix verify",
		Action: func(_ context.Context, cmd *cli.Command) error {
			list, err := loadPackageList(cmd)
			if err != nil {
				return err
			}

			issues := list.Verify()
			if len(issues) == 0 {
				fmt.Println(ui.StatusPass(fmt.Sprintf("%d package(s), sorted and unique", len(list.Packages))))
				return nil
			}

			for _, issue := range issues {
				fmt.Println(ui.StatusFail(fmt.Sprintf("%s: %s", list.Path, issue)))
			}
			return cli.Exit("", 1)
		},
	}
}

func nixFmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Print the package list in canonical form",
		UsageText: "skilldex nix fmt",
		Action: func(_ context.Context, cmd *cli.Command) error {
			list, err := loadPackageList(cmd)
			if err != nil {
				return err
			}

			fmt.Print(list.Format())
			return nil
		},
	}
}

func loadPackageList(cmd *cli.Command) (*nix.PackageList, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	c, err := loadCorpus(cmd, cfg)
	if err != nil {
		return nil, err
	}

	if c.NixPath == "" {
		return nil, fmt.Errorf("corpus %s has no package list at %s", c.Root, cfg.Layout().NixFile)
	}

	return nix.ParseFile(c.NixPath)
}
