// Package app wires the editor together and runs the main event loop.
package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dshills/markpeek/internal/config"
	"github.com/dshills/markpeek/internal/dispatch"
	apphandler "github.com/dshills/markpeek/internal/dispatch/handlers/app"
	"github.com/dshills/markpeek/internal/dispatch/handlers/cursor"
	"github.com/dshills/markpeek/internal/dispatch/handlers/marks"
	"github.com/dshills/markpeek/internal/editor"
	"github.com/dshills/markpeek/internal/input"
	"github.com/dshills/markpeek/internal/mark"
	"github.com/dshills/markpeek/internal/popup"
	"github.com/dshills/markpeek/internal/render"
	"github.com/dshills/markpeek/internal/render/backend"
	"github.com/dshills/markpeek/internal/script"
	"github.com/dshills/markpeek/internal/session"
)

// Options configures the application.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// InitPath overrides the default init.lua location.
	InitPath string

	// File is the file to open on startup. Empty opens a scratch
	// buffer.
	File string

	// Watch enables live config reload.
	Watch bool
}

// Application coordinates all editor components and owns the main
// event loop.
type Application struct {
	cfg     *config.Config
	scripts *script.Runtime

	backend  backend.Backend
	renderer *render.Renderer

	buffers *editor.Manager
	window  *editor.Window

	parser     *input.Parser
	dispatcher *dispatch.Dispatcher
	collector  *mark.Collector
	popups     *popup.Manager
	session    *session.Controller

	running  atomic.Bool
	done     chan struct{}
	downOnce sync.Once

	reloadCh     chan error
	startupWarns []string

	opts Options
}

// New creates an application and initializes every component that does
// not need a live terminal. Config and script problems become startup
// warnings, not errors.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:     opts,
		done:     make(chan struct{}),
		reloadCh: make(chan error, 1),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config system.
	cfgOpts := []config.Option{config.WithWatcher(app.opts.Watch)}
	if app.opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithPath(app.opts.ConfigPath))
	}
	cfg, err := config.New(cfgOpts...)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg
	if err := cfg.Load(); err != nil {
		app.warn(fmt.Sprintf("config: %v", err))
	}
	cfg.OnReload(func(err error) {
		select {
		case app.reloadCh <- err:
		default:
		}
	})

	// 2. Init script.
	app.scripts = script.New(script.WithWarnFunc(app.warn))
	initPath := app.opts.InitPath
	if initPath == "" && cfg.Path() != "" {
		initPath = filepath.Join(filepath.Dir(cfg.Path()), script.DefaultFileName)
	}
	if initPath != "" {
		if err := app.scripts.LoadFile(initPath); err != nil {
			app.warn(fmt.Sprintf("init script: %v", err))
		}
	}
	if settings := app.scripts.Settings(); settings != nil {
		if err := cfg.ApplyScript(settings); err != nil {
			app.warn(fmt.Sprintf("script settings: %v", err))
		}
	}

	// 3. Buffers.
	app.buffers = editor.NewManager()
	var buf *editor.Buffer
	if app.opts.File != "" {
		b, err := app.buffers.Open(app.opts.File)
		if err != nil {
			app.warn(fmt.Sprintf("open %s: %v", app.opts.File, err))
			b = app.buffers.CreateScratch()
		}
		buf = b
	} else {
		buf = app.buffers.CreateScratch()
	}
	app.window = editor.NewWindow(buf)

	// 4. Marks, popup, session.
	app.collector = mark.NewCollector(&markHost{buffers: app.buffers})
	if raw, err := cfg.GetString("popup.position"); err == nil && !popup.ValidHint(raw) {
		app.warn(fmt.Sprintf("config: unknown popup position %q, using cursor", raw))
	}
	app.popups = popup.NewManager(app.collector, &renderSurface{app: app}, popupOptions(cfg.Popup()), app.warn)
	app.popups.SetFormatter(app.scripts)
	app.session = session.NewController(app.popups)

	// 5. Input and dispatch.
	app.parser = input.NewParser()
	app.dispatcher = dispatch.New(dispatch.DefaultConfig())
	app.dispatcher.RegisterNamespace(cursor.NewHandler())
	app.dispatcher.RegisterNamespace(marks.NewHandler())
	app.dispatcher.RegisterNamespace(apphandler.NewHandler())

	return nil
}

// popupOptions converts config settings to popup options.
func popupOptions(s config.PopupSettings) popup.Options {
	o := popup.Options{
		Width:     s.Width,
		MaxHeight: s.MaxHeight,
		OffsetX:   s.OffsetX,
		OffsetY:   s.OffsetY,
		Position:  popup.PositionHint(s.Position),
	}
	if !popup.ValidHint(string(o.Position)) {
		o.Position = popup.HintCursor
	}
	return o
}

// SetBackend sets the terminal backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend and processes events until quit. It
// returns ErrQuit on a normal exit request.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend == nil {
		return ErrNoBackend
	}
	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.renderer = render.New(app.backend)
	app.applyEditorSettings()
	app.flushStartupWarnings()
	app.render()

	events := app.startInputPolling()

	for {
		select {
		case <-app.done:
			return nil

		case err := <-app.reloadCh:
			app.handleConfigReload(err)
			app.render()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}
			app.render()
			if app.session.State() == session.StateOpening {
				app.session.Painted()
			}
		}
	}
}

// Shutdown stops the event loop and releases component resources.
// Safe to call more than once, and after Run has returned.
func (app *Application) Shutdown() {
	app.downOnce.Do(func() {
		close(app.done)
		if app.cfg != nil {
			app.cfg.Close()
		}
		if app.scripts != nil {
			app.scripts.Close()
		}
	})
}

// IsRunning reports whether the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration system.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// warn surfaces a non-fatal problem. Before the renderer exists the
// message is queued and shown on the first frame.
func (app *Application) warn(msg string) {
	if app.renderer != nil {
		app.renderer.StatusLine().SetMessage(msg, true)
		return
	}
	app.startupWarns = append(app.startupWarns, msg)
}

func (app *Application) flushStartupWarnings() {
	if len(app.startupWarns) == 0 {
		return
	}
	app.renderer.StatusLine().SetMessage(app.startupWarns[len(app.startupWarns)-1], true)
	app.startupWarns = nil
}

// applyEditorSettings pushes the editor section of the config into the
// renderer. Called at startup and again on each config reload; popup
// settings are read once at startup.
func (app *Application) applyEditorSettings() {
	e := app.cfg.Editor()
	app.renderer.SetTabstop(e.Tabstop)
	app.renderer.Viewport().SetScrolloff(e.Scrolloff)
}

func (app *Application) handleConfigReload(err error) {
	if err != nil {
		app.warn(fmt.Sprintf("config reload: %v", err))
		return
	}
	app.applyEditorSettings()
	if r := app.renderer; r != nil {
		r.StatusLine().SetMessage("configuration reloaded", false)
	}
}

// render composes a full frame: document text and status line first,
// then the popup floated above, then one flush.
func (app *Application) render() {
	buf := app.window.Buffer()
	pos := app.window.Position()

	status := app.renderer.StatusLine()
	if app.session.State() == session.StateIdle {
		status.SetMode("NORMAL")
	} else {
		status.SetMode("PREVIEW")
	}
	status.SetFilename(buf.Name)
	status.SetPosition(pos.Line, pos.Col, buf.LineCount())

	app.renderer.Draw(buf, pos.Line, pos.Col)
	app.popups.Render(app.backend)
	app.backend.Show()
}
