// Package watch re-lints the corpus whenever its files change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/lint"
	"github.com/skilldex/skilldex/internal/logging"
)

// Options configures the watcher.
type Options struct {
	// Debounce is how long to wait after the last file event before
	// reloading. Editors often fire several events per save.
	Debounce time.Duration
	// Corpus configures corpus loading on each reload.
	Corpus corpus.Options
	// Lint configures the rule run on each reload.
	Lint lint.Options
}

// DefaultOptions returns the default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Lint:     lint.DefaultOptions(),
	}
}

// Callback receives the freshly loaded corpus and lint result after each
// reload, including the initial one.
type Callback func(c *corpus.Corpus, result *lint.Result)

// Watcher reloads and lints a corpus root on file changes.
type Watcher struct {
	root string
	opts Options
}

// New creates a watcher for the given corpus root.
func New(root string, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	return &Watcher{root: root, opts: opts}
}

// Run performs an initial load+lint, then blocks watching the corpus tree
// until ctx is cancelled. fn is invoked after the initial run and after
// every debounced reload.
func (w *Watcher) Run(ctx context.Context, fn Callback) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addRecursive(watcher, w.root); err != nil {
		return err
	}

	w.reload(fn)

	logging.Info("watching corpus for changes",
		logging.Path(w.root),
		logging.Operation("watch"),
	)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	reloads := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			logging.Debug("watch stopped", logging.Operation("watch"))
			return ctx.Err()

		case <-reloads:
			w.reload(fn)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}

			// New directories must be added to the watch set.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}

			logging.Debug("corpus file changed",
				logging.Path(event.Name),
				logging.Operation(event.Op.String()),
			)

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.opts.Debounce, func() {
				select {
				case reloads <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("file watcher error", logging.Err(err))
		}
	}
}

// reload loads the corpus and runs the lint rules, reporting through fn.
func (w *Watcher) reload(fn Callback) {
	c, err := corpus.Load(w.root, w.opts.Corpus)
	if err != nil {
		logging.Error("corpus reload failed",
			logging.Path(w.root),
			logging.Err(err),
		)
		return
	}

	result := lint.NewRunner(w.opts.Lint).Run(c)
	fn(c, result)
}

// relevant filters events down to content changes worth a reload.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}

	// Directory events carry no extension; keep them for the watch set.
	switch strings.ToLower(filepath.Ext(base)) {
	case ".md", ".nix", "":
		return true
	default:
		return false
	}
}

// addRecursive watches a directory and all its subdirectories.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %q: %w", path, err)
		}
		return nil
	})
}
