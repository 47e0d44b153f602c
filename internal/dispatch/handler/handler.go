// Package handler provides the handler interface and types for action
// dispatch.
package handler

import (
	"github.com/dshills/markpeek/internal/dispatch/execctx"
	"github.com/dshills/markpeek/internal/input"
)

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool
}

// Func adapts a plain function to the Handler interface. It accepts
// every action name; callers must ensure correct routing.
type Func func(action input.Action, ctx *execctx.ExecutionContext) Result

// Handle implements Handler.
func (f Func) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(action, ctx)
}

// CanHandle implements Handler.
func (f Func) CanHandle(string) bool {
	return true
}

// NamespaceHandler handles all actions within a namespace, the prefix
// before the first dot (e.g., "cursor" in "cursor.down").
type NamespaceHandler interface {
	// HandleAction handles an action within this namespace.
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Namespace returns the namespace prefix.
	Namespace() string
}

// namespaceAdapter adapts NamespaceHandler to the Handler interface.
type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return a.h.HandleAction(action, ctx)
}

func (a *namespaceAdapter) CanHandle(actionName string) bool {
	return a.h.CanHandle(actionName)
}

// Base provides action registration for namespace handlers.
type Base struct {
	namespace string
	actions   map[string]func(action input.Action, ctx *execctx.ExecutionContext) Result
}

// NewBase creates a namespace handler base.
func NewBase(namespace string) *Base {
	return &Base{
		namespace: namespace,
		actions:   make(map[string]func(action input.Action, ctx *execctx.ExecutionContext) Result),
	}
}

// Register registers a handler function for an action name.
func (b *Base) Register(actionName string, fn func(action input.Action, ctx *execctx.ExecutionContext) Result) {
	b.actions[actionName] = fn
}

// Namespace implements NamespaceHandler.
func (b *Base) Namespace() string {
	return b.namespace
}

// CanHandle implements NamespaceHandler.
func (b *Base) CanHandle(actionName string) bool {
	_, ok := b.actions[actionName]
	return ok
}

// HandleAction implements NamespaceHandler.
func (b *Base) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := b.actions[action.Name]
	if !ok {
		return Errorf("unknown action in namespace %s: %s", b.namespace, action.Name)
	}
	return fn(action, ctx)
}
