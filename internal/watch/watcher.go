// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     watch
// Description: Source file watcher that triggers a recompile on change
// Author:      Mike Stoffels
// Created:     2025-12-11
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/cminus/foundation/core/error"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
)

// DefaultDebounce is used when Options.Debounce is zero
const DefaultDebounce = 300 * time.Millisecond

// Handler is called with the watched path after it changed
type Handler func(path string)

// Options configures a Watcher
type Options struct {
	// Debounce is the quiet period after the last event before the handler runs
	Debounce time.Duration

	// Logger for watcher events (optional, defaults to the default logger)
	Logger *mdwlog.Logger
}

// Watcher calls a handler whenever one source file is written, created or
// replaced. The directory of the file is watched so that editors which
// save by renaming a temporary file are noticed as well.
type Watcher struct {
	path     string
	onChange Handler
	debounce time.Duration
	logger   *mdwlog.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	running  bool
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// New creates a watcher for path. The file's directory must exist.
func New(path string, onChange Handler, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to resolve path").
			WithCode(mdwerror.CodeWatchError).
			WithDetail("path", path)
	}
	// Event names carry the resolved directory
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return nil, mdwerror.Wrap(err, "directory of source does not exist").
			WithCode(mdwerror.CodeWatchError).
			WithDetail("path", path)
	}
	abs = filepath.Join(dir, filepath.Base(abs))

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	return &Watcher{
		path:     abs,
		onChange: onChange,
		debounce: opts.Debounce,
		logger:   opts.Logger.WithName("watch").WithSource(path),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Path returns the absolute path of the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Start starts watching in the background. It returns once the watch is
// registered; the watcher runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create watcher").
			WithCode(mdwerror.CodeWatchError)
	}

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return mdwerror.Wrap(err, "failed to watch directory").
			WithCode(mdwerror.CodeWatchError).
			WithDetail("dir", dir)
	}

	w.watcher = watcher
	w.running = true
	w.logger.Info("Started watching for source changes", mdwlog.Fields{"dir": dir})

	go w.watchLoop(ctx)

	return nil
}

// watchLoop handles file system events
func (w *Watcher) watchLoop(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		w.running = false
		w.watcher.Close()
		w.mu.Unlock()
		close(w.done)
	}()

	// Events arrive in bursts for one save; the handler runs once the
	// burst has been quiet for the debounce period
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping file watcher (context cancelled)")
			return

		case <-w.stopCh:
			w.logger.Info("Stopping file watcher (stop signal)")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("Source event", mdwlog.Fields{"op": event.Op.String()})
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if _, err := os.Stat(w.path); err != nil {
				w.logger.Warn("Source file disappeared, waiting for it to return")
				continue
			}
			w.onChange(w.path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.ErrorWithErr("Watcher error", err)
		}
	}
}

// relevant reports whether event concerns the watched file and changes it
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Stop stops the file watcher; it is safe to call more than once
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// Done is closed when the watch loop has ended
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}
