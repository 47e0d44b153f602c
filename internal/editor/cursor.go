package editor

import "unicode/utf8"

// Cursor is a 1-based line/column position within a buffer, with
// column memory for vertical movement.
type Cursor struct {
	Line int
	Col  int

	// wantCol remembers the column sought during vertical movement so
	// short lines do not permanently pull the cursor left.
	wantCol int
}

// NewCursor returns a cursor at the top of the buffer.
func NewCursor() *Cursor {
	return &Cursor{Line: 1, Col: 1, wantCol: 1}
}

// Position returns the cursor location.
func (c *Cursor) Position() Position {
	return Position{Line: c.Line, Col: c.Col}
}

// MoveTo places the cursor at pos, clamped to the buffer.
func (c *Cursor) MoveTo(b *Buffer, pos Position) {
	c.Line = clampInt(pos.Line, 1, b.LineCount())
	c.Col = clampInt(pos.Col, 1, lineWidth(b, c.Line))
	c.wantCol = c.Col
}

// Left moves one column left, stopping at the line start.
func (c *Cursor) Left(b *Buffer) {
	if c.Col > 1 {
		c.Col--
	}
	c.wantCol = c.Col
}

// Right moves one column right, stopping at the last column.
func (c *Cursor) Right(b *Buffer) {
	if c.Col < lineWidth(b, c.Line) {
		c.Col++
	}
	c.wantCol = c.Col
}

// Up moves one line up, honoring column memory.
func (c *Cursor) Up(b *Buffer) {
	if c.Line > 1 {
		c.Line--
	}
	c.Col = clampInt(c.wantCol, 1, lineWidth(b, c.Line))
}

// Down moves one line down, honoring column memory.
func (c *Cursor) Down(b *Buffer) {
	if c.Line < b.LineCount() {
		c.Line++
	}
	c.Col = clampInt(c.wantCol, 1, lineWidth(b, c.Line))
}

// LineStart moves to column 1.
func (c *Cursor) LineStart() {
	c.Col = 1
	c.wantCol = 1
}

// LineEnd moves to the last column of the current line.
func (c *Cursor) LineEnd(b *Buffer) {
	c.Col = lineWidth(b, c.Line)
	c.wantCol = c.Col
}

// FirstNonBlank moves to the first non-whitespace column of the
// current line.
func (c *Cursor) FirstNonBlank(b *Buffer) {
	c.Col = b.FirstNonBlank(c.Line)
	c.wantCol = c.Col
}

// Top moves to the first line.
func (c *Cursor) Top(b *Buffer) {
	c.Line = 1
	c.Col = clampInt(c.wantCol, 1, lineWidth(b, 1))
}

// Bottom moves to the last line.
func (c *Cursor) Bottom(b *Buffer) {
	c.Line = b.LineCount()
	c.Col = clampInt(c.wantCol, 1, lineWidth(b, c.Line))
}

// lineWidth returns the rightmost legal cursor column on line n.
// An empty line still admits column 1.
func lineWidth(b *Buffer, n int) int {
	line, ok := b.Line(n)
	if !ok {
		return 1
	}
	count := utf8.RuneCountInString(line)
	if count < 1 {
		return 1
	}
	return count
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
