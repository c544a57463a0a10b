package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dshills/skimread/internal/config/loader"
	"github.com/dshills/skimread/internal/config/watcher"
)

// Reloader watches a configuration file and delivers a freshly loaded
// Config on every change. Invalid files are reported on Errors and the
// previous configuration stays in effect.
type Reloader struct {
	path    string
	fsys    loader.FileSystem
	environ func() []string
	w       *watcher.Watcher

	// Only the newest result matters, so both channels hold one value and
	// a pending value is replaced rather than queued behind.
	sendMu  sync.Mutex
	configs chan *Config
	errs    chan error
}

// NewReloader creates a reloader for path. Call Start to begin watching.
func NewReloader(path string, opts ...watcher.Option) (*Reloader, error) {
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	r := &Reloader{
		path:    path,
		fsys:    loader.DefaultFS(),
		environ: os.Environ,
		w:       w,
		configs: make(chan *Config, 1),
		errs:    make(chan error, 1),
	}
	w.OnChange(r.handleChange)
	w.OnError(func(err error) { deliver(&r.sendMu, r.errs, err) })
	return r, nil
}

// Configs delivers reloaded configurations.
func (r *Reloader) Configs() <-chan *Config {
	return r.configs
}

// Errors delivers load and watch errors.
func (r *Reloader) Errors() <-chan error {
	return r.errs
}

// Path returns the watched file.
func (r *Reloader) Path() string {
	return r.path
}

// Start begins watching.
func (r *Reloader) Start() {
	r.w.Start()
}

// Close stops watching. Closing twice is a no-op.
func (r *Reloader) Close() error {
	err := r.w.Unwatch(r.path)
	if errors.Is(err, watcher.ErrStopped) {
		return nil
	}
	return errors.Join(err, r.w.Stop())
}

func (r *Reloader) handleChange(watcher.Event) {
	cfg, err := LoadFrom(r.fsys, r.path, r.environ())
	if err != nil {
		deliver(&r.sendMu, r.errs, fmt.Errorf("reloading %s: %w", r.path, err))
		return
	}
	deliver(&r.sendMu, r.configs, cfg)
}

// deliver puts v on ch, replacing any value the receiver has not taken yet.
func deliver[T any](mu *sync.Mutex, ch chan T, v T) {
	mu.Lock()
	defer mu.Unlock()
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
