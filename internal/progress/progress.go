// Package progress renders terminal progress bars for long corpus scans.
package progress

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/skilldex/skilldex/internal/logging"
	"github.com/skilldex/skilldex/internal/ui"
)

// Bar is a progress indicator that degrades to a no-op when stderr is not an
// interactive terminal, colors are off, or debug logging owns the stream.
type Bar struct {
	bar  *progressbar.ProgressBar
	desc string
}

// Simple returns a bar over max steps writing to stderr.
func Simple(max int64, description string) *Bar {
	return New(max, description, os.Stderr)
}

// New returns a bar over max steps writing to w.
func New(max int64, description string, w io.Writer) *Bar {
	b := &Bar{desc: description}

	if !interactive(w) {
		logging.Debug(description, logging.Count(int(max)))
		return b
	}

	b.bar = progressbar.NewOptions64(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(50*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(ui.IsColorEnabled()),
	)
	return b
}

// Add advances the bar by n steps.
func (b *Bar) Add(n int) error {
	if b.bar == nil {
		return nil
	}
	return b.bar.Add(n)
}

// Finish completes and clears the bar.
func (b *Bar) Finish() error {
	if b.bar == nil {
		return nil
	}
	return b.bar.Finish()
}

func interactive(w io.Writer) bool {
	if !ui.IsColorEnabled() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	// Debug logs and the bar would fight over the same stream.
	return !logging.Default().Enabled(context.Background(), logging.LevelDebug)
}
