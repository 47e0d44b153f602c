package render

import (
	"github.com/dshills/markpeek/internal/render/backend"
	"github.com/dshills/markpeek/internal/render/core"
)

// ContentSource supplies buffer lines for drawing. Lines are
// 1-indexed; Line reports false past the end of the buffer.
type ContentSource interface {
	Line(n int) (string, bool)
	LineCount() int
}

// Renderer composes the text area and status line into backend frames.
// It owns the viewport and translates buffer positions into screen
// cells, expanding tabs and accounting for wide runes.
type Renderer struct {
	backend  backend.Backend
	viewport *Viewport
	status   *StatusLine

	tabstop int

	textStyle  core.Style
	tildeStyle core.Style
}

// New creates a renderer sized to the backend. The bottom row is
// reserved for the status line.
func New(b backend.Backend) *Renderer {
	width, height := b.Size()
	textHeight := height - 1
	if textHeight < 1 {
		textHeight = 1
	}
	status := NewStatusLine()
	status.Resize(width)
	return &Renderer{
		backend:    b,
		viewport:   NewViewport(width, textHeight),
		status:     status,
		tabstop:    4,
		textStyle:  core.DefaultStyle(),
		tildeStyle: core.DefaultStyle().WithForeground(core.ColorFromIndex(8)),
	}
}

// Viewport returns the scroll window over the buffer.
func (r *Renderer) Viewport() *Viewport {
	return r.viewport
}

// StatusLine returns the status line.
func (r *Renderer) StatusLine() *StatusLine {
	return r.status
}

// SetTabstop sets the tab expansion width.
func (r *Renderer) SetTabstop(n int) {
	if n < 1 {
		n = 1
	}
	r.tabstop = n
}

// Resize adjusts the renderer to a new backend size.
func (r *Renderer) Resize(width, height int) {
	textHeight := height - 1
	if textHeight < 1 {
		textHeight = 1
	}
	r.viewport.Resize(width, textHeight)
	r.status.Resize(width)
}

// DisplayCol converts a 1-indexed rune column in line to its
// 1-indexed display column after tab expansion and rune widths.
func (r *Renderer) DisplayCol(line string, col int) int {
	width := 0
	i := 1
	for _, ch := range line {
		if i >= col {
			break
		}
		if ch == '\t' {
			width += r.tabstop - width%r.tabstop
		} else {
			width += core.RuneWidth(ch)
		}
		i++
	}
	return width + 1
}

// CursorScreenPos projects a buffer position onto the screen. Returns
// (-1, -1) when the position is outside the viewport.
func (r *Renderer) CursorScreenPos(src ContentSource, line, col int) (int, int) {
	text, ok := src.Line(line)
	if !ok {
		return -1, -1
	}
	return r.viewport.BufferToScreen(line, r.DisplayCol(text, col))
}

// ScrollTo scrolls the viewport so the given buffer position is
// visible. Reports whether the viewport moved.
func (r *Renderer) ScrollTo(src ContentSource, line, col int) bool {
	text, _ := src.Line(line)
	return r.viewport.ScrollIntoView(line, r.DisplayCol(text, col))
}

// Draw renders the buffer contents and status line. The frame is not
// flushed; callers invoke the backend's Show once any floating
// surfaces have been composed on top.
func (r *Renderer) Draw(src ContentSource, cursorLine, cursorCol int) {
	r.viewport.SetMaxLine(src.LineCount())
	r.backend.Clear()

	width := r.viewport.Width()
	first, last := r.viewport.VisibleLineRange()
	leftCol := r.viewport.LeftCol()

	row := 0
	for line := first; line <= last; line++ {
		text, ok := src.Line(line)
		if !ok {
			break
		}
		r.drawLine(row, text, leftCol, width)
		row++
	}
	for ; row < r.viewport.Height(); row++ {
		r.backend.SetCell(0, row, core.NewStyledCell('~', r.tildeStyle))
	}

	r.status.Render(r.backend, r.viewport.Height())

	if srow, scol := r.CursorScreenPos(src, cursorLine, cursorCol); srow >= 0 {
		r.backend.ShowCursor(scol, srow)
	} else {
		r.backend.HideCursor()
	}
}

// drawLine renders one buffer line at the given screen row, shifted
// left by the horizontal scroll and clipped to the viewport width.
func (r *Renderer) drawLine(row int, text string, leftCol, width int) {
	expanded := core.ExpandTabs(text, r.tabstop)
	cells := core.CellsFromString(expanded, r.textStyle)
	if leftCol > 1 {
		skip := leftCol - 1
		if skip >= len(cells) {
			return
		}
		cells = cells[skip:]
		if len(cells) > 0 && cells[0].IsContinuation() {
			cells = cells[1:]
		}
	}
	cells = core.TruncateCells(cells, width)
	for x, c := range cells {
		r.backend.SetCell(x, row, c)
	}
}
