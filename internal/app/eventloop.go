package app

import (
	"github.com/dshills/markpeek/internal/dispatch/execctx"
	apphandler "github.com/dshills/markpeek/internal/dispatch/handlers/app"
	"github.com/dshills/markpeek/internal/dispatch/handlers/marks"
	"github.com/dshills/markpeek/internal/input"
	"github.com/dshills/markpeek/internal/input/key"
	"github.com/dshills/markpeek/internal/render/backend"
)

// handleBackendEvent routes one terminal event. Returns ErrQuit when
// the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		return app.handleKey(ev.Key)
	default:
		return nil
	}
}

// handleResize cancels any preview session, since the popup geometry
// was computed for the old dimensions, then resizes the renderer.
func (app *Application) handleResize(ev backend.Event) error {
	app.session.Cancel()
	app.renderer.Resize(ev.Width, ev.Height)
	return nil
}

// handleKey feeds one key press to the session controller when a
// preview is awaiting its mark key, otherwise to the modal parser.
func (app *Application) handleKey(ev key.Event) error {
	app.renderer.StatusLine().ClearMessage()

	if app.session.Awaiting() {
		jump, ok := app.session.Resume(ev)
		if !ok {
			return nil
		}
		action := input.NewAction(marks.ActionJump).WithChar(jump.Name)
		action.Args.Exact = jump.Exact
		return app.dispatchAction(action)
	}

	action, ok := app.parser.Parse(ev)
	if !ok {
		if !app.parser.Pending() && !ev.IsEscape() {
			app.backend.Beep()
		}
		return nil
	}
	return app.dispatchAction(action)
}

// dispatchAction runs one action through the dispatcher and surfaces
// its result on the status line.
func (app *Application) dispatchAction(action input.Action) error {
	result := app.dispatcher.Dispatch(action, app.buildExecutionContext())

	status := app.renderer.StatusLine()
	if result.IsError() {
		status.SetMessage(result.Error.Error(), true)
	} else if result.Message != "" {
		status.SetMessage(result.Message, false)
	}

	if action.Name == apphandler.ActionQuit {
		return ErrQuit
	}
	return nil
}

// buildExecutionContext bundles the capabilities handlers may touch.
func (app *Application) buildExecutionContext() *execctx.ExecutionContext {
	buf := app.window.Buffer()
	ctx := execctx.New().
		WithBuffer(buf).
		WithCursor(app.window).
		WithView(&viewAdapter{app: app}).
		WithSession(&sessionBridge{app: app}).
		WithNotifier(&statusNotifier{app: app})
	ctx.BufferName = buf.Name
	return ctx
}

// startInputPolling runs a goroutine that forwards backend events to
// the returned channel. PollEvent blocks; backend.Shutdown unblocks it
// so the goroutine can observe the stopped loop and exit.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for app.running.Load() {
			ev := app.backend.PollEvent()
			if !app.running.Load() {
				return
			}
			select {
			case events <- ev:
			case <-app.done:
				return
			default:
				// Buffer full; drop rather than deadlock.
			}
		}
	}()

	return events
}
