// Package app provides handlers for application-level actions.
package app

import (
	"github.com/dshills/markpeek/internal/dispatch/execctx"
	"github.com/dshills/markpeek/internal/dispatch/handler"
	"github.com/dshills/markpeek/internal/input"
)

// Action names for application operations.
const (
	ActionQuit   = "app.quit"
	ActionRedraw = "app.redraw"
)

// Handler implements namespace-based application action handling. The
// quit action succeeds here; the event loop watches for its name and
// exits.
type Handler struct{}

// NewHandler creates a new app handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the app namespace.
func (h *Handler) Namespace() string {
	return "app"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionQuit, ActionRedraw:
		return true
	}
	return false
}

// HandleAction processes an application action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionQuit:
		return handler.Success()
	case ActionRedraw:
		return handler.Success()
	default:
		return handler.Errorf("unknown app action: %s", action.Name)
	}
}
