// Package app runs the reader: it owns the reading session, turns backend
// events into session commands through the key map, applies configuration
// reloads and redraws after every change.
package app

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/skimread/internal/config"
	"github.com/dshills/skimread/internal/document"
	"github.com/dshills/skimread/internal/renderer"
	"github.com/dshills/skimread/internal/renderer/backend"
)

// ConfigSource delivers reloaded configurations and reload failures.
// *config.Reloader implements it.
type ConfigSource interface {
	Configs() <-chan *config.Config
	Errors() <-chan error
}

// Application is the central coordinator of the reader.
type Application struct {
	mu sync.RWMutex

	doc     *document.Document
	config  *config.Config
	keymap  *config.KeyMap
	theme   renderer.Theme
	session *Session

	backend  backend.Backend
	renderer *renderer.Renderer
	reload   ConfigSource

	logger  *Logger
	metrics *Metrics

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// Options configures the application.
type Options struct {
	// Document is the text to read. Required.
	Document *document.Document

	// Config defaults to config.Default().
	Config *config.Config

	// Reload, when set, supplies configuration changes while running.
	Reload ConfigSource

	// Logger defaults to NullLogger.
	Logger *Logger
}

// New creates an application for opts.Document.
func New(opts Options) (*Application, error) {
	if opts.Document == nil || opts.Document.Text == nil {
		return nil, &InitError{Component: "document", Err: ErrNoDocument}
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = NullLogger
	}

	app := &Application{
		doc:     opts.Document,
		reload:  opts.Reload,
		logger:  opts.Logger,
		metrics: NewMetrics(),
		done:    make(chan struct{}),
	}
	if err := app.bootstrap(opts.Config); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap resolves the configuration and creates the session.
func (app *Application) bootstrap(cfg *config.Config) error {
	keymap, theme, err := resolveConfig(cfg)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}

	app.config = cfg
	app.keymap = keymap
	app.theme = theme

	app.session = NewSession(app.doc.Text, app.logger)
	app.session.SetBionic(cfg.View.Bionic)

	st := app.doc.Stats
	app.logger.WithComponent("document").Debug("loaded %q: %d bytes, %d code points, %d graphemes, %d lines, %d CRLF unified",
		app.doc.Path, st.Bytes, st.CodePoints, st.Graphemes, st.Lines, st.Replaced)
	return nil
}

// resolveConfig compiles the key bindings and theme of cfg. Problems in
// both are reported together.
func resolveConfig(cfg *config.Config) (*config.KeyMap, renderer.Theme, error) {
	var errs ErrorList

	keymap, err := cfg.KeyMap()
	if err != nil {
		errs.Add(NewComponentError("keymap", "", err))
	}
	theme, err := renderer.NewTheme(cfg.Theme)
	if err != nil {
		errs.Add(NewComponentError("theme", "", err))
	}

	return keymap, theme, errs.Err()
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend, draws the first page and processes events
// until the quit command or Shutdown. A screen too small to hold a single
// cell of text is fatal.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	if err := app.start(); err != nil {
		return err
	}

	err := app.eventLoop()
	app.logger.Debug("exiting: %s", app.metrics.Snapshot())
	return err
}

// start creates the renderer and draws the first frame.
func (app *Application) start() error {
	app.mu.Lock()
	app.renderer = renderer.New(app.backend, app.theme, renderer.Options{
		StatusLine: app.config.View.StatusLine,
	})
	app.mu.Unlock()

	w, h := app.backend.Size()
	if err := app.resize(w, h); err != nil {
		return &InitError{Component: "viewport", Err: err}
	}
	app.draw()
	return nil
}

// Shutdown stops the event loop. It is safe to call more than once and
// from any goroutine.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() { close(app.done) })
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Session returns the reading session. It belongs to the event loop while
// the application runs.
func (app *Application) Session() *Session {
	return app.session
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	return app.config
}

// Renderer returns the renderer, nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
