// Package cache persists parsed SKILL.md results between runs. Entries are
// keyed by file path and dropped as soon as the source file's modification
// time moves past the cached one.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/skilldex/skilldex/internal/model"
	"github.com/skilldex/skilldex/internal/util"
)

const (
	formatVersion = "1.0"
	// DefaultTTL bounds how long an entry survives without being refreshed.
	DefaultTTL = 1 * time.Hour
)

// Entry pairs a parsed skill with the staleness metadata needed to decide
// whether the parse is still valid.
type Entry struct {
	Skill      model.Skill `json:"skill"`
	CachedAt   time.Time   `json:"cached_at"`
	SourcePath string      `json:"source_path"`
	SourceMod  time.Time   `json:"source_mod"`
}

// Cache is an on-disk JSON store of parsed skills.
type Cache struct {
	Version string           `json:"version"`
	Entries map[string]Entry `json:"entries"`
	path    string
}

// New opens the cache file <cacheDir>/<name>.json, creating the directory if
// needed. An empty cacheDir means ~/.skilldex/cache. A missing, corrupted, or
// format-incompatible file yields an empty cache rather than an error.
func New(name string, cacheDir string) (*Cache, error) {
	if cacheDir == "" {
		cacheDir = filepath.Join(util.ConfigPath(), "cache")
	}
	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		return nil, err
	}

	c := &Cache{
		Version: formatVersion,
		Entries: make(map[string]Entry),
		path:    filepath.Join(cacheDir, name+".json"),
	}
	c.load()
	return c, nil
}

func (c *Cache) load() {
	// #nosec G304 - the path derives from trusted configuration
	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}

	path := c.path
	if json.Unmarshal(data, c) != nil || c.Version != formatVersion {
		c.Entries = make(map[string]Entry)
		c.Version = formatVersion
	}
	c.path = path
}

// Get returns the cached skill for key when the source file still exists and
// has not been modified since it was cached. Stale entries are evicted.
func (c *Cache) Get(key string) (model.Skill, bool) {
	entry, ok := c.Entries[key]
	if !ok {
		return model.Skill{}, false
	}

	info, err := os.Stat(entry.SourcePath)
	if err != nil || info.ModTime().After(entry.SourceMod) {
		delete(c.Entries, key)
		return model.Skill{}, false
	}

	return entry.Skill, true
}

// Set records a parsed skill under key, capturing the source's current
// modification time.
func (c *Cache) Set(key string, skill model.Skill) {
	mod := time.Now()
	if info, err := os.Stat(skill.Path); err == nil {
		mod = info.ModTime()
	}

	c.Entries[key] = Entry{
		Skill:      skill,
		CachedAt:   time.Now(),
		SourcePath: skill.Path,
		SourceMod:  mod,
	}
}

// Save writes the cache back to disk.
func (c *Cache) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	// #nosec G306 - cache files are plain metadata
	return os.WriteFile(c.path, data, 0o644)
}

// Clear empties the cache and removes its file. A missing file is fine.
func (c *Cache) Clear() error {
	c.Entries = make(map[string]Entry)
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Size reports the number of live entries.
func (c *Cache) Size() int {
	return len(c.Entries)
}

// Prune drops entries cached longer ago than ttl, returning the count.
func (c *Cache) Prune(ttl time.Duration) int {
	pruned := 0
	for key, entry := range c.Entries {
		if time.Since(entry.CachedAt) > ttl {
			delete(c.Entries, key)
			pruned++
		}
	}
	return pruned
}
