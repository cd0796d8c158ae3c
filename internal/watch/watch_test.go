package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/skilldex/skilldex/internal/corpus"
	"github.com/skilldex/skilldex/internal/lint"
)

type update struct {
	skills   int
	findings int
}

func TestRunInitialAndChange(t *testing.T) {
	root := t.TempDir()
	skillDir := filepath.Join(root, "skills", "datetime")
	if err := os.MkdirAll(skillDir, 0o750); err != nil {
		t.Fatal(err)
	}
	valid := "---\nname: datetime\ndescription: d\ninvocation: [dates]\n---\n"
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(valid), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan update, 4)
	opts := DefaultOptions()
	opts.Debounce = 50 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		done <- New(root, opts).Run(ctx, func(c *corpus.Corpus, result *lint.Result) {
			updates <- update{skills: len(c.Skills), findings: len(result.Findings)}
		})
	}()

	// Initial load fires before any file change.
	select {
	case u := <-updates:
		if u.skills != 1 || u.findings != 0 {
			t.Errorf("initial update = %+v", u)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial update")
	}

	// Breaking the skill triggers a debounced reload with a finding.
	broken := "---\nname: datetime\ninvocation: [dates]\n---\n"
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-updates:
		if u.findings == 0 {
			t.Errorf("expected findings after breaking the skill, got %+v", u)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload after change")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancellation")
	}
}

func TestRunMissingRoot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := New(filepath.Join(t.TempDir(), "nope"), DefaultOptions()).
		Run(ctx, func(*corpus.Corpus, *lint.Result) {})
	if err == nil {
		t.Error("expected error for missing root")
	}
}

func TestRelevant(t *testing.T) {
	tests := map[string]struct {
		event fsnotify.Event
		want  bool
	}{
		"markdown write": {
			event: fsnotify.Event{Name: "/c/skills/a/SKILL.md", Op: fsnotify.Write},
			want:  true,
		},
		"nix create": {
			event: fsnotify.Event{Name: "/c/nix/packages.nix", Op: fsnotify.Create},
			want:  true,
		},
		"directory create": {
			event: fsnotify.Event{Name: "/c/skills/newskill", Op: fsnotify.Create},
			want:  true,
		},
		"markdown remove": {
			event: fsnotify.Event{Name: "/c/skills/a/SKILL.md", Op: fsnotify.Remove},
			want:  true,
		},
		"chmod only": {
			event: fsnotify.Event{Name: "/c/skills/a/SKILL.md", Op: fsnotify.Chmod},
			want:  false,
		},
		"editor swap file": {
			event: fsnotify.Event{Name: "/c/skills/a/.SKILL.md.swp", Op: fsnotify.Write},
			want:  false,
		},
		"unrelated extension": {
			event: fsnotify.Event{Name: "/c/skills/a/notes.txt", Op: fsnotify.Write},
			want:  false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
