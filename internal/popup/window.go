package popup

import (
	"github.com/google/uuid"

	"github.com/dshills/markpeek/internal/render/backend"
	"github.com/dshills/markpeek/internal/render/core"
)

// Window is a floating overlay surface. Its content is read-only;
// only the manager replaces lines while the window is open.
type Window struct {
	id        uuid.UUID
	geometry  Geometry
	cells     [][]core.Cell
	style     core.Style
	destroyed bool
}

// newWindow creates a window with the given geometry and content.
func newWindow(geom Geometry, lines []string, style core.Style) *Window {
	w := &Window{
		id:       uuid.New(),
		geometry: geom,
		style:    style,
	}
	w.replaceContent(lines)
	return w
}

// ID returns the window's unique identity.
func (w *Window) ID() uuid.UUID {
	return w.id
}

// Geometry returns the window's screen rectangle.
func (w *Window) Geometry() Geometry {
	return w.geometry
}

// replaceContent rebuilds the cell grid from lines, padding each row
// to the window width and truncating overflow.
func (w *Window) replaceContent(lines []string) {
	grid := make([][]core.Cell, w.geometry.Height)
	for row := range grid {
		cells := make([]core.Cell, 0, w.geometry.Width)
		if row < len(lines) {
			cells = core.TruncateCells(core.CellsFromString(lines[row], w.style), w.geometry.Width)
		}
		used := 0
		for _, c := range cells {
			used += c.Width
		}
		for ; used < w.geometry.Width; used++ {
			cells = append(cells, core.NewStyledCell(' ', w.style))
		}
		grid[row] = cells
	}
	w.cells = grid
}

// Render blits the window onto the backend. Destroyed windows draw
// nothing.
func (w *Window) Render(b backend.Backend) {
	if w.destroyed {
		return
	}
	for row, cells := range w.cells {
		x := w.geometry.Col
		for _, c := range cells {
			b.SetCell(x, w.geometry.Row+row, c)
			x++
		}
	}
}

// destroy releases the window. Safe to call more than once.
func (w *Window) destroy() {
	w.destroyed = true
	w.cells = nil
}
