// Package cursor provides handlers for cursor movement operations.
package cursor

import (
	"github.com/dshills/markpeek/internal/dispatch/execctx"
	"github.com/dshills/markpeek/internal/dispatch/handler"
	"github.com/dshills/markpeek/internal/editor"
	"github.com/dshills/markpeek/internal/input"
)

// Action names for cursor movements.
const (
	ActionLeft          = "cursor.left"
	ActionRight         = "cursor.right"
	ActionUp            = "cursor.up"
	ActionDown          = "cursor.down"
	ActionLineStart     = "cursor.lineStart"
	ActionLineEnd       = "cursor.lineEnd"
	ActionFirstNonBlank = "cursor.firstNonBlank"
	ActionTop           = "cursor.top"
	ActionBottom        = "cursor.bottom"
)

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionLeft, ActionRight, ActionUp, ActionDown,
		ActionLineStart, ActionLineEnd, ActionFirstNonBlank,
		ActionTop, ActionBottom:
		return true
	}
	return false
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()

	switch action.Name {
	case ActionLeft:
		repeat(count, ctx.Cursor.Left)
	case ActionRight:
		repeat(count, ctx.Cursor.Right)
	case ActionUp:
		repeat(count, ctx.Cursor.Up)
	case ActionDown:
		repeat(count, ctx.Cursor.Down)
	case ActionLineStart:
		ctx.Cursor.LineStart()
	case ActionLineEnd:
		ctx.Cursor.LineEnd()
	case ActionFirstNonBlank:
		ctx.Cursor.FirstNonBlank()
	case ActionTop:
		h.toLine(action, ctx, 1)
	case ActionBottom:
		h.toLine(action, ctx, ctx.Buffer.LineCount())
	default:
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}
	return handler.Success()
}

// toLine moves to a whole-line target. An explicit count addresses
// that line instead; the cursor lands on its first non-blank column.
func (h *Handler) toLine(action input.Action, ctx *execctx.ExecutionContext, line int) {
	if action.HasCount() {
		line = action.Count
	}
	ctx.Cursor.MoveTo(editor.Position{Line: line, Col: 1})
	ctx.Cursor.FirstNonBlank()
}

func repeat(count int, move func()) {
	for i := 0; i < count; i++ {
		move()
	}
}
