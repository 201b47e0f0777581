// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when any of a fixed set of files changes.
//
// The parent directory of every file is watched rather than the file itself,
// so files that do not exist yet, and files replaced by rename (as editors
// and dotenv tooling do), are still noticed. Events within the debounce
// window are coalesced so the callback fires once with all changed files.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mvnenv/mvnenv/internal/logging"
)

// defaultDebounce is the quiet period before the callback fires.
const defaultDebounce = 500 * time.Millisecond

// ErrNoFiles is returned by New when Config.Files is empty.
var ErrNoFiles = errors.New("watch: no files to watch")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Files are the paths whose creation, modification, removal or
		// renaming triggers OnChange. Relative paths are made absolute.
		Files []string

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative values fall back to defaultDebounce.
		Debounce time.Duration

		// OnChange is called with the sorted absolute paths that changed. A nil
		// callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives progress and error messages. When nil, nothing is logged.
		Logger *logging.Logger
	}

	// Watcher monitors a set of files and fires a debounced callback when
	// they change. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		files    map[string]struct{}
		log      *logging.Logger
		debounce time.Duration
		started  atomic.Bool
	}
)

// New creates a Watcher for cfg.Files and registers their parent directories.
// Directories that do not exist are skipped with a warning; New fails only
// when none of them can be watched.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Files) == 0 {
		return nil, ErrNoFiles
	}

	log := logging.OrDiscard(cfg.Logger)

	files := make(map[string]struct{}, len(cfg.Files))
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %q: %w", f, err)
		}
		files[abs] = struct{}{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		files:    files,
		log:      log,
		debounce: debounce,
	}

	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			log.Warn("watch: close after init failure", "err", closeErr)
		}
		return nil, err
	}

	return w, nil
}

// Files returns the sorted absolute paths being watched.
func (w *Watcher) Files() []string {
	return slices.Sorted(maps.Keys(w.files))
}

// Run blocks until ctx is cancelled, processing filesystem events and
// dispatching debounced callbacks. It returns nil on cancellation and
// propagates fatal watcher errors.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire drains the pending set and invokes OnChange. A run still in
	// progress reschedules it so pending events are not lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.log.Debug("watch: previous run still in progress, rescheduling")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.log.Error("watch: callback failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil {
			localTimer.Stop()
		}
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.log.Warn("watch: close fsnotify", "err", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}
			if _, watched := w.files[filepath.Clean(evt.Name)]; !watched {
				continue
			}
			if evt.Op == fsnotify.Chmod {
				continue
			}

			mu.Lock()
			pending[filepath.Clean(evt.Name)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.log.Warn("watch: fsnotify error", "err", err)
		}
	}
}

// addDirectories registers the parent directory of every watched file.
func (w *Watcher) addDirectories() error {
	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}

	added := 0
	for _, dir := range slices.Sorted(maps.Keys(dirs)) {
		if err := w.fsw.Add(dir); err != nil {
			w.log.Warn("watch: skipping directory", "dir", dir, "err", err)
			continue
		}
		added++
	}
	if added == 0 {
		return fmt.Errorf("watch: none of the directories of %v can be watched", w.Files())
	}
	return nil
}
