// Package dispatch routes actions to handlers and coordinates
// execution.
package dispatch

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/dshills/markpeek/internal/dispatch/execctx"
	"github.com/dshills/markpeek/internal/dispatch/handler"
	"github.com/dshills/markpeek/internal/input"
)

// ErrNoHandler indicates no handler is registered for an action.
var ErrNoHandler = errors.New("no handler for action")

// Config controls dispatcher behavior.
type Config struct {
	// RecoverFromPanic converts handler panics into error results
	// instead of crashing the editor.
	RecoverFromPanic bool
}

// DefaultConfig returns the default dispatcher configuration.
func DefaultConfig() Config {
	return Config{RecoverFromPanic: true}
}

// Dispatcher routes actions to handlers. Exact-name registrations take
// precedence over namespace handlers.
type Dispatcher struct {
	registry *Registry
	router   *Router
	config   Config
}

// New creates a dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	return &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		config:   config,
	}
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterNamespace registers a handler for a whole namespace.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h.Namespace(), h)
}

// CanDispatch reports whether a handler exists for the action name.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	return d.registry.Has(actionName) || d.router.Route(actionName) != nil
}

// Dispatch executes an action against the given context. After a
// successful action the view is scrolled to keep the cursor visible.
func (d *Dispatcher) Dispatch(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx == nil {
		ctx = execctx.New()
	}
	if action.Count > 0 {
		ctx.Count = action.Count
	}

	h := d.registry.Get(action.Name)
	if h == nil {
		h = d.router.Route(action.Name)
	}
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	if result.IsOK() {
		d.ensureCursorVisible(ctx)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			result = handler.Errorf("handler panic for %s: %v\n%s", action.Name, r, string(stack[:n]))
		}
	}()

	return h.Handle(action, ctx)
}

// ensureCursorVisible scrolls the view to the cursor after an action.
func (d *Dispatcher) ensureCursorVisible(ctx *execctx.ExecutionContext) {
	if ctx.View == nil || ctx.Cursor == nil {
		return
	}
	ctx.View.ScrollTo(ctx.Cursor.Position())
}
