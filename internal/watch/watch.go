// Package watch re-runs generation when package sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"enumarg-generator/internal/config"
	"enumarg-generator/internal/gen"
)

// DefaultDebounce coalesces bursts of events, e.g. an editor's
// write-rename-chmod sequence.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls a function once at start and again after relevant files in
// its directories change.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	logger   *slog.Logger
	// skipInitial leaves the first call to the caller.
	skipInitial bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after the last event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// SkipInitialRun makes Run wait for the first change instead of calling
// fn at start, for callers that already ran it.
func SkipInitialRun() Option {
	return func(w *Watcher) { w.skipInitial = true }
}

// New creates a watcher over dirs.
func New(dirs []string, opts ...Option) *Watcher {
	w := &Watcher{
		dirs:     slices.Compact(slices.Sorted(slices.Values(dirs))),
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Relevant reports whether a change to path should trigger a run: Go
// sources other than tests and generated files, and config files.
func Relevant(path string) bool {
	base := filepath.Base(path)

	if slices.Contains(config.DefaultNames, base) {
		return true
	}

	return strings.HasSuffix(base, ".go") &&
		!strings.HasSuffix(base, "_test.go") &&
		!strings.HasSuffix(base, gen.FileSuffix)
}

// Run calls fn (unless SkipInitialRun was given), then calls it again after
// every burst of relevant changes until ctx is done. Errors from fn are logged, not returned.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	if !w.skipInitial {
		w.call(ctx, fn)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if !Relevant(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}

			w.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watch events dropped, regenerating", "error", err)
				timer.Reset(w.debounce)

				continue
			}

			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			w.call(ctx, fn)
		}
	}
}

func (w *Watcher) call(ctx context.Context, fn func(context.Context) error) {
	start := time.Now()
	if err := fn(ctx); err != nil {
		w.logger.Error("regeneration failed", "error", err)
		return
	}

	w.logger.Info("regenerated", "took", time.Since(start).Round(time.Millisecond))
}
