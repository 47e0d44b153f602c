// Package execctx provides the execution context for action handlers.
package execctx

import "github.com/dshills/markpeek/internal/editor"

// BufferInterface abstracts the active buffer for handlers.
type BufferInterface interface {
	Line(n int) (string, bool)
	LineCount() int
	FirstNonBlank(n int) int
	SetMark(name rune, pos editor.Position)
	Mark(name rune) (editor.Position, bool)
}

// CursorInterface abstracts cursor movement over the active buffer.
type CursorInterface interface {
	Position() editor.Position
	MoveTo(pos editor.Position)
	Left()
	Right()
	Up()
	Down()
	LineStart()
	LineEnd()
	FirstNonBlank()
	Top()
	Bottom()
}

// ViewInterface abstracts view operations for handlers.
type ViewInterface interface {
	// ScrollTo makes the given buffer position visible. Reports
	// whether the view moved.
	ScrollTo(pos editor.Position) bool
}

// SessionInterface abstracts the marks preview session for handlers.
type SessionInterface interface {
	// Trigger starts a preview session with the given prefix
	// character for the named buffer. Returns false when the overlay
	// declines to open.
	Trigger(prefix rune, buffer string) bool
}

// NotifierInterface surfaces user-facing messages.
type NotifierInterface interface {
	Info(msg string)
	Warn(msg string)
}

// ExecutionContext provides the capabilities handlers run against.
type ExecutionContext struct {
	// Buffer is the active buffer.
	Buffer BufferInterface

	// Cursor is the cursor over the active buffer.
	Cursor CursorInterface

	// View provides scrolling.
	View ViewInterface

	// Session is the marks preview session controller.
	Session SessionInterface

	// Notifier surfaces messages on the status line.
	Notifier NotifierInterface

	// BufferName is the display name of the active buffer.
	BufferName string

	// Count is the repeat count (1 if not specified).
	Count int
}

// New creates an execution context with a default count.
func New() *ExecutionContext {
	return &ExecutionContext{Count: 1}
}

// WithBuffer returns the context with the buffer set.
func (ctx *ExecutionContext) WithBuffer(b BufferInterface) *ExecutionContext {
	ctx.Buffer = b
	return ctx
}

// WithCursor returns the context with the cursor set.
func (ctx *ExecutionContext) WithCursor(c CursorInterface) *ExecutionContext {
	ctx.Cursor = c
	return ctx
}

// WithView returns the context with the view set.
func (ctx *ExecutionContext) WithView(v ViewInterface) *ExecutionContext {
	ctx.View = v
	return ctx
}

// WithSession returns the context with the session set.
func (ctx *ExecutionContext) WithSession(s SessionInterface) *ExecutionContext {
	ctx.Session = s
	return ctx
}

// WithNotifier returns the context with the notifier set.
func (ctx *ExecutionContext) WithNotifier(n NotifierInterface) *ExecutionContext {
	ctx.Notifier = n
	return ctx
}

// WithCount returns the context with the repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Warn surfaces a warning if a notifier is wired.
func (ctx *ExecutionContext) Warn(msg string) {
	if ctx.Notifier != nil {
		ctx.Notifier.Warn(msg)
	}
}

// Validate checks that the context has the components cursor motion
// handlers require.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Buffer == nil {
		return ErrMissingBuffer
	}
	if ctx.Cursor == nil {
		return ErrMissingCursor
	}
	return nil
}
