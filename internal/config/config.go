// Package config provides configuration management for skilldex.
// It supports YAML configuration files, environment variables, and sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/util"
)

// Config represents the complete skilldex configuration.
type Config struct {
	// Corpus configures where the documentation corpus lives
	Corpus CorpusConfig `yaml:"corpus"`

	// Lint configures lint behavior
	Lint LintConfig `yaml:"lint"`

	// Route configures keyword routing behavior
	Route RouteConfig `yaml:"route"`

	// Cache configures caching behavior
	Cache CacheConfig `yaml:"cache"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output"`
}

// CorpusConfig holds corpus location and layout settings.
type CorpusConfig struct {
	// Root is the corpus root directory. Can use ~ for home directory or be
	// relative (resolved from the working directory).
	Root string `yaml:"root"`
	// SkillsDir is the skills directory relative to the root
	SkillsDir string `yaml:"skills_dir,omitempty"`
	// StandardsDir is the standards directory relative to the root
	StandardsDir string `yaml:"standards_dir,omitempty"`
	// NixFile is the package-list fragment relative to the root
	NixFile string `yaml:"nix_file,omitempty"`
}

// LintConfig holds lint settings.
type LintConfig struct {
	// Strict promotes warnings to errors
	Strict bool `yaml:"strict"`
	// Severity overrides the default severity per rule id (error, warning)
	Severity map[string]string `yaml:"severity,omitempty"`
	// CollisionThreshold is the similarity score above which invocation
	// keywords from different skills count as a collision (0.0-1.0)
	CollisionThreshold float64 `yaml:"collision_threshold"`
}

// RouteConfig holds keyword routing settings.
type RouteConfig struct {
	// Threshold is the minimum fuzzy-match score for a routing hit (0.0-1.0)
	Threshold float64 `yaml:"threshold"`
	// Algorithm is the similarity algorithm (levenshtein, jaro-winkler, combined)
	Algorithm string `yaml:"algorithm"`
}

// CacheConfig holds caching settings.
type CacheConfig struct {
	// Enabled enables or disables the parse cache
	Enabled bool `yaml:"enabled"`
	// TTL is the time-to-live for cache entries
	TTL time.Duration `yaml:"ttl"`
	// Location is the cache directory path
	Location string `yaml:"location"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Format is the default output format (table, json, yaml, markdown)
	Format string `yaml:"format"`
	// Color controls color output (auto, always, never)
	Color string `yaml:"color"`
	// Verbose enables verbose output
	Verbose bool `yaml:"verbose"`
}

// Default returns the default configuration.
func Default() *Config {
	layout := corpus.DefaultLayout()
	return &Config{
		Corpus: CorpusConfig{
			Root:         ".",
			SkillsDir:    layout.SkillsDir,
			StandardsDir: layout.StandardsDir,
			NixFile:      layout.NixFile,
		},
		Lint: LintConfig{
			Strict:             false,
			CollisionThreshold: 0.9,
		},
		Route: RouteConfig{
			Threshold: 0.75,
			Algorithm: "combined",
		},
		Cache: CacheConfig{
			Enabled:  true,
			TTL:      time.Hour,
			Location: filepath.Join(util.ConfigPath(), "cache"),
		},
		Output: OutputConfig{
			Format:  "table",
			Color:   "auto",
			Verbose: false,
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(util.ConfigPath(), configFileName)
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	configPath := FilePath()
	// #nosec G304 - configPath is constructed from trusted config directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	// Parse YAML over defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern SKILLDEX_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	// Corpus settings
	if v := os.Getenv("SKILLDEX_CORPUS_ROOT"); v != "" {
		c.Corpus.Root = v
	}
	if v := os.Getenv("SKILLDEX_CORPUS_SKILLS_DIR"); v != "" {
		c.Corpus.SkillsDir = v
	}
	if v := os.Getenv("SKILLDEX_CORPUS_STANDARDS_DIR"); v != "" {
		c.Corpus.StandardsDir = v
	}
	if v := os.Getenv("SKILLDEX_CORPUS_NIX_FILE"); v != "" {
		c.Corpus.NixFile = v
	}

	// Lint settings
	if v := os.Getenv("SKILLDEX_LINT_STRICT"); v != "" {
		c.Lint.Strict = parseBool(v)
	}
	if v := os.Getenv("SKILLDEX_LINT_COLLISION_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			c.Lint.CollisionThreshold = f
		}
	}

	// Route settings
	if v := os.Getenv("SKILLDEX_ROUTE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			c.Route.Threshold = f
		}
	}
	if v := os.Getenv("SKILLDEX_ROUTE_ALGORITHM"); v != "" {
		c.Route.Algorithm = v
	}

	// Cache settings
	if v := os.Getenv("SKILLDEX_CACHE_ENABLED"); v != "" {
		c.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv("SKILLDEX_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Cache.TTL = d
		}
	}
	if v := os.Getenv("SKILLDEX_CACHE_LOCATION"); v != "" {
		c.Cache.Location = v
	}

	// Output settings
	if v := os.Getenv("SKILLDEX_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("SKILLDEX_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("SKILLDEX_OUTPUT_VERBOSE"); v != "" {
		c.Output.Verbose = parseBool(v)
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// CorpusRoot returns the configured corpus root, expanded against baseDir.
func (c *Config) CorpusRoot(baseDir string) string {
	root := util.ExpandPath(c.Corpus.Root, baseDir)
	if root == "" {
		return baseDir
	}
	return root
}

// Layout builds the corpus layout from the configured directories, filling
// any empty field from the defaults.
func (c *Config) Layout() corpus.Layout {
	layout := corpus.DefaultLayout()
	if c.Corpus.SkillsDir != "" {
		layout.SkillsDir = c.Corpus.SkillsDir
	}
	if c.Corpus.StandardsDir != "" {
		layout.StandardsDir = c.Corpus.StandardsDir
	}
	if c.Corpus.NixFile != "" {
		layout.NixFile = c.Corpus.NixFile
	}
	return layout
}
