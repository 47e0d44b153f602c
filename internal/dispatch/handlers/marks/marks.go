// Package marks provides handlers for mark set, preview, and jump
// operations.
package marks

import (
	"github.com/dshills/markpeek/internal/dispatch/execctx"
	"github.com/dshills/markpeek/internal/dispatch/handler"
	"github.com/dshills/markpeek/internal/editor"
	"github.com/dshills/markpeek/internal/input"
)

// Action names for mark operations.
const (
	ActionSet     = "mark.set"
	ActionPreview = "mark.preview"
	ActionJump    = "mark.jump"
)

// PrevMark is the implicit mark recording the position before the
// last jump.
const PrevMark = '\''

// Handler implements namespace-based mark handling.
type Handler struct{}

// NewHandler creates a new marks handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the mark namespace.
func (h *Handler) Namespace() string {
	return "mark"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionSet, ActionPreview, ActionJump:
		return true
	}
	return false
}

// HandleAction processes a mark action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionSet:
		return h.set(action, ctx)
	case ActionPreview:
		return h.preview(action, ctx)
	case ActionJump:
		return h.jump(action, ctx)
	default:
		return handler.Errorf("unknown mark action: %s", action.Name)
	}
}

// set records the cursor position under the given mark name.
func (h *Handler) set(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	if action.Args.Char == 0 {
		return handler.Errorf("mark.set: missing mark name")
	}
	ctx.Buffer.SetMark(action.Args.Char, ctx.Cursor.Position())
	return handler.Success()
}

// preview starts a marks preview session for the active buffer. The
// session declining to open is a silent cancellation, not an error.
func (h *Handler) preview(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Session == nil {
		return handler.Error(execctx.ErrMissingSession)
	}
	if !ctx.Session.Trigger(action.Args.Char, ctx.BufferName) {
		return handler.Cancelled()
	}
	return handler.Success()
}

// jump moves the cursor to a named mark. An unknown mark ends with no
// action. The pre-jump position is recorded under the previous-mark
// name before moving.
func (h *Handler) jump(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	pos, ok := ctx.Buffer.Mark(action.Args.Char)
	if !ok {
		return handler.NoOp()
	}

	ctx.Buffer.SetMark(PrevMark, ctx.Cursor.Position())

	if action.Args.Exact {
		ctx.Cursor.MoveTo(pos)
	} else {
		ctx.Cursor.MoveTo(editor.Position{Line: pos.Line, Col: 1})
		ctx.Cursor.FirstNonBlank()
	}
	return handler.Success()
}
