// Package render composes frames: the document text area, the
// statusline, and any floating popup blitted over them.
package render

import "sync"

// Viewport tracks the visible window into a buffer and converts
// between 1-based buffer positions and 0-based screen coordinates.
type Viewport struct {
	mu sync.RWMutex

	// First visible buffer line and column, 1-based.
	topLine int
	leftCol int

	// Size in screen cells.
	width  int
	height int

	// Lines in the buffer; 0 means unknown.
	maxLine int

	// Rows of context kept around the cursor when scrolling.
	scrolloff int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func NewViewport(width, height int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Viewport{
		topLine: 1,
		leftCol: 1,
		width:   width,
		height:  height,
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopLine returns the first visible buffer line.
func (v *Viewport) TopLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// LeftCol returns the first visible display column.
func (v *Viewport) LeftCol() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftCol
}

// Resize updates the viewport size, clamped to a minimum of 1.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
}

// SetMaxLine records the buffer's line count and clamps the scroll
// position to it.
func (v *Viewport) SetMaxLine(maxLine int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.maxLine = maxLine
	if v.maxLine > 0 && v.topLine > v.maxLine {
		v.topLine = v.maxLine
	}
}

// SetScrolloff sets the context margin for ScrollIntoView.
func (v *Viewport) SetScrolloff(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 0 {
		n = 0
	}
	v.scrolloff = n
}

// VisibleLineRange returns the inclusive range of visible buffer lines.
func (v *Viewport) VisibleLineRange() (start, end int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine, v.bottomLine()
}

func (v *Viewport) bottomLine() int {
	bottom := v.topLine + v.height - 1
	if v.maxLine > 0 && bottom > v.maxLine {
		bottom = v.maxLine
	}
	return bottom
}

// LineToScreenRow converts a buffer line to a screen row.
// Returns -1 if the line is not visible.
func (v *Viewport) LineToScreenRow(line int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if line < v.topLine || line > v.bottomLine() {
		return -1
	}
	return line - v.topLine
}

// BufferToScreen converts buffer coordinates to screen coordinates.
// Returns (-1, -1) if the position is scrolled out of view.
func (v *Viewport) BufferToScreen(line, col int) (screenRow, screenCol int) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if line < v.topLine || line > v.bottomLine() {
		return -1, -1
	}
	if col < v.leftCol || col >= v.leftCol+v.width {
		return -1, -1
	}
	return line - v.topLine, col - v.leftCol
}

// ScrollIntoView scrolls minimally so the given position is visible
// with scrolloff rows of context. Returns true if the view moved.
func (v *Viewport) ScrollIntoView(line, col int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	moved := false

	top := v.topLine
	if line < top+v.scrolloff {
		top = line - v.scrolloff
	} else if line > v.topLine+v.height-1-v.scrolloff {
		top = line - v.height + 1 + v.scrolloff
	}
	if v.maxLine > 0 && top > v.maxLine-v.height+1 {
		top = v.maxLine - v.height + 1
	}
	if top < 1 {
		top = 1
	}
	if top != v.topLine {
		v.topLine = top
		moved = true
	}

	left := v.leftCol
	if col < left {
		left = col
	} else if col >= left+v.width {
		left = col - v.width + 1
	}
	if left < 1 {
		left = 1
	}
	if left != v.leftCol {
		v.leftCol = left
		moved = true
	}

	return moved
}
