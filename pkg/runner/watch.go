package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/mdcomment/internal/logging"
	"github.com/yaklabco/mdcomment/pkg/fsutil"
	"github.com/yaklabco/mdcomment/pkg/markup"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before converting.
const DefaultDebounce = 100 * time.Millisecond

// Watcher converts Markdown files again when they change on disk.
type Watcher struct {
	runner    *Runner
	opts      Options
	filter    filter
	fs        *fsnotify.Watcher
	snapshots map[string]*fsutil.Snapshot

	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
}

// NewWatcher watches the directories of the files converted in initial,
// plus the directories named in opts.Paths so that new files are picked up.
// The snapshots in initial decide whether a later event is a real change.
func (r *Runner) NewWatcher(opts Options, initial *Result) (*Watcher, error) {
	f, err := newFilter(opts)
	if err != nil {
		return nil, err
	}
	if opts.IDs == nil {
		opts.IDs = markup.NewIDSequence()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		runner:    r,
		opts:      opts,
		filter:    f,
		fs:        fsw,
		snapshots: make(map[string]*fsutil.Snapshot),
	}

	dirs := make(map[string]struct{})
	if initial != nil {
		for _, outcome := range initial.Files {
			dirs[filepath.Dir(outcome.Path)] = struct{}{}
			if outcome.Snapshot != nil {
				w.snapshots[outcome.Path] = outcome.Snapshot
			}
		}
	}
	for _, p := range opts.effectivePaths() {
		if !filepath.IsAbs(p) {
			p = filepath.Join(f.workDir, p)
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs[filepath.Clean(p)] = struct{}{}
		}
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Run converts changed files until ctx is done, passing each outcome to
// report. It closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, report func(FileOutcome)) error {
	defer w.fs.Close()
	logger := logging.FromContext(ctx)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.tracks(event.Name) {
				continue
			}
			logger.Debug("file event", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			sort.Strings(paths)
			for _, p := range paths {
				if outcome, ok := w.convert(ctx, p); ok {
					report(outcome)
				}
			}
		}
	}
}

// tracks reports whether path is a file the watcher converts.
func (w *Watcher) tracks(path string) bool {
	if _, ok := w.snapshots[path]; ok {
		return true
	}
	base := filepath.Base(path)
	return base != "" && base[0] != '.' && w.filter.matches(path)
}

// convert converts path when its content differs from the last snapshot.
func (w *Watcher) convert(ctx context.Context, path string) (FileOutcome, bool) {
	if snap := w.snapshots[path]; snap != nil {
		changed, err := fsutil.Changed(ctx, snap)
		if err == nil && !changed {
			return FileOutcome{}, false
		}
	}

	outcome := w.runner.ConvertFile(ctx, path, w.opts)
	if errors.Is(outcome.Error, fsutil.ErrNotFound) {
		delete(w.snapshots, path)
		return FileOutcome{}, false
	}
	if outcome.Snapshot != nil {
		w.snapshots[path] = outcome.Snapshot
	}
	return outcome, true
}
