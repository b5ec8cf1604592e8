package config

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/roadrec/dashlog/internal/logging"
)

// Watcher watches the sink definition file and notifies handlers when it
// changes. The file is loaded fresh on each change so handlers never see
// stale data; rapid editor write bursts are debounced.
type Watcher struct {
	path     string
	debounce time.Duration
	handlers []func(SinkFile)
	onError  func(error)
	mu       sync.RWMutex
	watcher  *fsnotify.Watcher
	logger   *logging.Handle
	ctx      context.Context
	cancel   context.CancelFunc
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce duration for config changes.
// Default is 1500ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithErrorHandler sets a callback for config load errors.
// If not set, errors are only logged.
func WithErrorHandler(handler func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = handler
	}
}

// NewWatcher creates a watcher over the sink definition file at path.
func NewWatcher(path string, logger *logging.Handle, opts ...WatcherOption) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		debounce: 1500 * time.Millisecond,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnReload registers a handler called with the freshly loaded file on
// every change. Returns an unsubscribe function.
func (w *Watcher) OnReload(handler func(SinkFile)) func() {
	w.mu.Lock()
	w.handlers = append(w.handlers, handler)
	idx := len(w.handlers) - 1
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if idx < len(w.handlers) {
			w.handlers[idx] = nil
		}
	}
}

// Start begins watching the sink definition file for changes.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	if addErr := watcher.Add(w.path); addErr != nil {
		watcher.Close()
		return addErr
	}

	w.logger.Info("sink config watcher started: path=%s debounce=%s", w.path, w.debounce)
	go w.watch()
	return nil
}

// Stop stops watching and cleans up resources.
func (w *Watcher) Stop() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// watch is the main loop that listens for file changes.
func (w *Watcher) watch() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Debug("sink config watcher stopped")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Write events cover most config edits; some editors replace
			// the file, which shows up as create.
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.logger.Debug("sink config change detected: op=%s", event.Op)

				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			}

		case <-timerC:
			w.loadAndNotify()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warning("sink config watcher error: %v", err)
		}
	}
}

func (w *Watcher) loadAndNotify() {
	f, err := LoadSinkFile(w.path)
	if err != nil {
		w.logger.Error("failed to reload sink config: %v", err)
		if w.onError != nil {
			w.onError(err)
		}
		return
	}

	w.logger.Info("sink config changed, notifying handlers")
	w.mu.RLock()
	handlers := append([]func(SinkFile){}, w.handlers...)
	w.mu.RUnlock()

	for _, h := range handlers {
		if h != nil {
			h(f)
		}
	}
}
