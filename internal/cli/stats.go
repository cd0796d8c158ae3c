package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/skilldex/skilldex/internal/config"
	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/logging"
	"github.com/skilldex/skilldex/internal/ui"
	"github.com/skilldex/skilldex/internal/util"
)

// Stats holds corpus-wide statistics.
type Stats struct {
	Root           string     `json:"root"`
	SkillCount     int        `json:"skill_count"`
	StandardCount  int        `json:"standard_count"`
	KeywordCount   int        `json:"keyword_count"`
	SharedKeywords int        `json:"shared_keywords"`
	WithReference  int        `json:"with_reference"`
	WithExamples   int        `json:"with_examples"`
	HasNixPackages bool       `json:"has_nix_packages"`
	DiskUsage      int64      `json:"disk_usage_bytes"`
	NewestChange   *time.Time `json:"newest_change,omitempty"`
	ProblemCount   int        `json:"problem_count"`
	CacheEnabled   bool       `json:"cache_enabled"`
	CacheSize      int64      `json:"cache_size_bytes"`
	TopKeywords    []string   `json:"top_keywords,omitempty"`
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Display corpus statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output in JSON format for scripting",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			logging.Debug("collecting statistics")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			c, err := loadCorpus(cmd, cfg)
			if err != nil {
				return err
			}

			stats := collectStats(c, cfg)

			if cmd.Bool("json") {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(stats)
			}

			outputStatsText(stats)
			return nil
		},
	}
}

// collectStats derives statistics from a loaded corpus.
func collectStats(c *corpus.Corpus, cfg *config.Config) *Stats {
	stats := &Stats{
		Root:           c.Root,
		SkillCount:     len(c.Skills),
		StandardCount:  len(c.Standards),
		HasNixPackages: c.NixPath != "",
		ProblemCount:   len(c.Problems),
		CacheEnabled:   cfg.Cache.Enabled,
	}

	index := c.KeywordIndex()
	stats.KeywordCount = len(index)
	for keyword, names := range index {
		if len(names) > 1 {
			stats.SharedKeywords++
			stats.TopKeywords = append(stats.TopKeywords, keyword)
		}
	}
	sort.Strings(stats.TopKeywords)

	var newest time.Time
	for _, s := range c.Skills {
		if s.HasReference {
			stats.WithReference++
		}
		if s.HasExamples {
			stats.WithExamples++
		}
		if s.ModifiedAt.After(newest) {
			newest = s.ModifiedAt
		}
	}
	for _, d := range c.Standards {
		if d.ModifiedAt.After(newest) {
			newest = d.ModifiedAt
		}
	}
	if !newest.IsZero() {
		stats.NewestChange = &newest
	}

	if size, err := diskUsage(c.Root); err == nil {
		stats.DiskUsage = size
	}

	if cfg.Cache.Enabled {
		cacheDir := util.ExpandPath(cfg.Cache.Location, "")
		if size, err := diskUsage(cacheDir); err == nil {
			stats.CacheSize = size
		}
	}

	return stats
}

// diskUsage recursively sums file sizes under a directory.
func diskUsage(path string) (int64, error) {
	var total int64

	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) || os.IsPermission(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}

func outputStatsText(stats *Stats) {
	fmt.Println(ui.Bold("skilldex Statistics"))
	fmt.Println()

	fmt.Println(ui.Bold("Corpus:"))
	fmt.Printf("  Root:       %s\n", stats.Root)
	fmt.Printf("  Skills:     %d\n", stats.SkillCount)
	fmt.Printf("  Standards:  %d\n", stats.StandardCount)
	fmt.Printf("  Disk Usage: %s\n", humanize.IBytes(uint64(stats.DiskUsage)))
	if stats.NewestChange != nil {
		fmt.Printf("  Updated:    %s (%s)\n",
			stats.NewestChange.Format("2006-01-02 15:04:05"),
			humanize.Time(*stats.NewestChange))
	}
	if stats.ProblemCount > 0 {
		fmt.Printf("  Problems:   %s\n", ui.Warning(fmt.Sprintf("%d", stats.ProblemCount)))
	}
	fmt.Println()

	fmt.Println(ui.Bold("Skills:"))
	fmt.Printf("  Keywords:        %d distinct\n", stats.KeywordCount)
	if stats.SharedKeywords > 0 {
		fmt.Printf("  Shared Keywords: %s\n",
			ui.Warning(fmt.Sprintf("%d (%v)", stats.SharedKeywords, stats.TopKeywords)))
	}
	fmt.Printf("  With Reference:  %d\n", stats.WithReference)
	fmt.Printf("  With Examples:   %d\n", stats.WithExamples)
	fmt.Println()

	fmt.Println(ui.Bold("Extras:"))
	if stats.HasNixPackages {
		fmt.Printf("  Nix Packages: %s\n", ui.Success("present"))
	} else {
		fmt.Printf("  Nix Packages: %s\n", ui.Dim("none"))
	}
	if stats.CacheEnabled {
		fmt.Printf("  Parse Cache:  %s (%s)\n",
			ui.Success("enabled"), humanize.IBytes(uint64(stats.CacheSize)))
	} else {
		fmt.Printf("  Parse Cache:  %s\n", ui.Warning("disabled"))
	}
}
