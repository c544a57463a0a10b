package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/dshills/skimread/internal/config"
	"github.com/dshills/skimread/internal/renderer"
	"github.com/dshills/skimread/internal/renderer/backend"
)

// eventLoop is the main application loop. Input arrives from the polling
// goroutine and configuration changes from the reload source; both are
// handled here, one batch at a time, followed by a redraw.
func (app *Application) eventLoop() error {
	events := app.startInputPolling()

	var (
		configs <-chan *config.Config
		errs    <-chan error
	)
	if app.reload != nil {
		configs = app.reload.Configs()
		errs = app.reload.Errors()
	}

	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			batch, merged := coalesceResizes(drain(ev, events))
			app.metrics.RecordMergedResizes(merged)
			for _, e := range batch {
				app.metrics.RecordEvent()
				if err := app.handleBackendEvent(e); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					app.logger.WithComponent("eventloop").Error("%v", err)
				}
			}
			app.draw()

		case cfg := <-configs:
			app.applyConfig(cfg)
			app.draw()

		case err := <-errs:
			app.metrics.RecordReload(false)
			app.logger.WithComponent("config").Warn("%v", err)
			app.session.SetMessage("config not reloaded: " + err.Error())
			app.draw()
		}
	}
}

// drain returns first followed by every event already queued.
func drain(first backend.Event, events <-chan backend.Event) []backend.Event {
	batch := []backend.Event{first}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return batch
			}
			batch = append(batch, ev)
		default:
			return batch
		}
	}
}

// coalesceResizes drops every resize event in batch except the last, which
// describes the final size. It returns the remaining events in order and
// the number dropped.
func coalesceResizes(batch []backend.Event) ([]backend.Event, int) {
	last := -1
	for i, ev := range batch {
		if ev.Type == backend.EventResize {
			last = i
		}
	}

	out := make([]backend.Event, 0, len(batch))
	merged := 0
	for i, ev := range batch {
		if ev.Type == backend.EventResize && i != last {
			merged++
			continue
		}
		out = append(out, ev)
	}
	return out, merged
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	default:
		return nil
	}
}

// handleResize repaginates for the new screen size. Failures keep the old
// pages; the session reports them on the status line.
func (app *Application) handleResize(ev backend.Event) error {
	_ = app.resize(ev.Width, ev.Height)
	return nil
}

// resize repaginates for a screen of width by height cells.
func (app *Application) resize(width, height int) error {
	vp := app.renderer.Viewport(width, height)
	return app.session.Resize(vp.Columns, vp.Rows)
}

// handleKeyEvent processes keyboard input events. While a pattern is being
// typed keys edit the prompt; otherwise they go through the key map.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	s := app.session

	switch s.Mode() {
	case ModeSearchInput:
		return app.handlePromptKey(ev)
	case ModeSearchBrowse:
		if ev.Key == backend.KeyEscape {
			s.CancelSearch()
			return nil
		}
	}

	cmd, ok := app.keymap.Lookup(ev.KeyName())
	if !ok {
		return nil
	}
	return app.execute(cmd)
}

// handlePromptKey edits the search prompt.
func (app *Application) handlePromptKey(ev backend.Event) error {
	s := app.session

	switch ev.Key {
	case backend.KeyEnter:
		// A failed search is shown on the status line and logged by the
		// session.
		_ = s.SubmitSearch()
	case backend.KeyEscape:
		s.CancelSearch()
	case backend.KeyBackspace, backend.KeyDelete:
		s.DeleteRune()
	case backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) {
			return nil
		}
		s.InputRune(ev.Rune)
	}
	return nil
}

// execute runs a bound command against the session.
func (app *Application) execute(cmd config.Command) error {
	s := app.session

	switch cmd {
	case config.CmdNextPage:
		s.NextPage()
	case config.CmdPreviousPage:
		s.PreviousPage()
	case config.CmdFirstPage:
		s.FirstPage()
	case config.CmdLastPage:
		s.LastPage()
	case config.CmdSearch:
		s.BeginSearch()
	case config.CmdNextMatch:
		_ = s.NextOccurrence()
	case config.CmdPreviousMatch:
		_ = s.PreviousOccurrence()
	case config.CmdToggleBionic:
		s.ToggleBionic()
	case config.CmdQuit:
		return ErrQuit
	default:
		return fmt.Errorf("%s: %w", cmd, config.ErrUnknownCommand)
	}
	return nil
}

// applyConfig switches to a reloaded configuration. A configuration whose
// keys or theme cannot be resolved is rejected as a whole.
func (app *Application) applyConfig(cfg *config.Config) {
	keymap, theme, err := resolveConfig(cfg)
	if err != nil {
		app.metrics.RecordReload(false)
		err = NewComponentError("config", "reload", err)
		app.logger.Warn("%v", err)
		app.session.SetMessage(err.Error())
		return
	}

	app.theme = theme
	app.config = cfg
	app.keymap = keymap
	app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))

	app.renderer.SetTheme(app.theme)
	app.renderer.SetOptions(renderer.Options{StatusLine: cfg.View.StatusLine})
	app.session.SetBionic(cfg.View.Bionic)

	w, h := app.backend.Size()
	_ = app.resize(w, h)

	app.metrics.RecordReload(true)
	app.logger.WithComponent("config").Info("reloaded %s", cfg.Path)
	app.session.SetMessage("configuration reloaded")
}

// draw paints the session's current frame.
func (app *Application) draw() {
	start := time.Now()
	app.renderer.Draw(app.session.View())
	app.metrics.RecordFrame(time.Since(start))
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel, which is closed once the backend
// shuts down.
//
// PollEvent is blocking, so the goroutine only exits after the backend's
// Shutdown unblocks it; Run defers that call.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventNone {
				return
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}
