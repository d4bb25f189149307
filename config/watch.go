package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/philipp01105/drainlog/logger"
)

// DefaultDebounce collapses bursts of file events into one reload
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc observes each reload. cfg is nil when err is not.
type ReloadFunc func(cfg *Config, err error)

// WatchOption configures a Watcher
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
	onReload ReloadFunc
}

// WithDebounce sets the quiet period before a change is reloaded
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithOnReload registers a callback run after every reload attempt
func WithOnReload(fn ReloadFunc) WatchOption {
	return func(o *watchOptions) {
		o.onReload = fn
	}
}

// Watcher reloads a configuration file when it changes and applies it to a
// Manager. Only levels, options and the immediate flag are live; the sink
// set is fixed when the Manager is built.
type Watcher struct {
	path     string
	m        *logger.Manager
	watcher  *fsnotify.Watcher
	onReload ReloadFunc
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	running  bool
	timer    *time.Timer
}

// Watch creates a Watcher for path. The parent directory is watched so that
// editors replacing the file by rename are still seen. Call Start or
// StartAsync to begin and Stop to release the watch.
func Watch(path string, m *logger.Manager, opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if m == nil {
		return nil, errors.New("config: nil manager")
	}

	o := watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: failed to create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		closeErr := fsWatcher.Close()
		return nil, errors.Join(
			fmt.Errorf("config: failed to watch directory %s: %w", dir, err),
			closeErr,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		m:        m,
		watcher:  fsWatcher,
		onReload: o.onReload,
		debounce: o.debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start watches until Stop is called. It blocks.
func (w *Watcher) Start() {
	if !w.markRunning() {
		return
	}
	w.run()
}

// StartAsync watches in a background goroutine
func (w *Watcher) StartAsync() {
	if !w.markRunning() {
		return
	}
	go w.run()
}

func (w *Watcher) markRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.ctx.Err() != nil {
		return false
	}
	w.running = true
	return true
}

// Stop ends the watch. A pending reload is cancelled. Stop is idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ctx.Err() != nil {
		return nil
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.cancel()
	w.running = false
	return w.watcher.Close()
}

func (w *Watcher) run() {
	filename := filepath.Base(w.path)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, filename)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(nil, fmt.Errorf("config: watch error: %w", err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, filename string) {
	if filepath.Base(event.Name) != filename {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.ctx.Done():
			return
		default:
		}
		w.report(w.Reload())
	})
}

// Reload loads the file once and applies it to the Manager
func (w *Watcher) Reload() (*Config, error) {
	cfg, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(w.m); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (w *Watcher) report(cfg *Config, err error) {
	if w.onReload != nil {
		w.onReload(cfg, err)
	}
}
