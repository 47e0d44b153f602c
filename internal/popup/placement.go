// Package popup implements the marks preview overlay: a floating
// window anchored near the cursor listing the current buffer's marks.
package popup

// PositionHint selects the placement mode for the overlay.
type PositionHint string

const (
	// HintCursor anchors the overlay at the cursor plus the
	// configured offsets.
	HintCursor PositionHint = "cursor"
	// HintTopLeft pins the overlay to the viewport origin.
	HintTopLeft PositionHint = "topleft"
)

// ValidHint reports whether s names a known placement mode.
func ValidHint(s string) bool {
	switch PositionHint(s) {
	case HintCursor, HintTopLeft:
		return true
	}
	return false
}

// Options are the overlay settings, fixed for the life of a session.
type Options struct {
	Width     int
	MaxHeight int
	OffsetX   int
	OffsetY   int
	Position  PositionHint
}

// DefaultOptions returns the built-in overlay settings.
func DefaultOptions() Options {
	return Options{
		Width:     30,
		MaxHeight: 10,
		OffsetX:   1,
		OffsetY:   1,
		Position:  HintCursor,
	}
}

// Geometry is the resolved overlay rectangle in screen coordinates.
type Geometry struct {
	Row    int
	Col    int
	Width  int
	Height int
}

// ContentHeight computes the overlay height for a mark count: one row
// per mark, at least one row so the empty message has space, capped at
// maxHeight.
func ContentHeight(count, maxHeight int) int {
	h := count
	if h < 1 {
		h = 1
	}
	if maxHeight > 0 && h > maxHeight {
		h = maxHeight
	}
	return h
}

// Place computes the overlay rectangle for a cursor position inside a
// viewport. The anchor is the cursor plus the configured offsets; when
// the overlay would cross the right or bottom edge it is shifted back
// past the anchor, then clamped so it never clips off-screen.
func Place(opts Options, cursorRow, cursorCol, viewWidth, viewHeight, lineCount int) Geometry {
	width := opts.Width
	if width > viewWidth {
		width = viewWidth
	}
	if width < 1 {
		width = 1
	}
	height := ContentHeight(lineCount, opts.MaxHeight)
	if height > viewHeight {
		height = viewHeight
	}

	if opts.Position == HintTopLeft {
		return Geometry{Row: 0, Col: 0, Width: width, Height: height}
	}

	col := cursorCol + opts.OffsetX
	row := cursorRow + opts.OffsetY

	if col+width > viewWidth {
		col -= width + 2*opts.OffsetX
	}
	if row+height > viewHeight {
		row -= height + opts.OffsetY
	}

	if col > viewWidth-width {
		col = viewWidth - width
	}
	if col < 0 {
		col = 0
	}
	if row > viewHeight-height {
		row = viewHeight - height
	}
	if row < 0 {
		row = 0
	}
	return Geometry{Row: row, Col: col, Width: width, Height: height}
}
