package editor

// Window pairs a buffer with its cursor, exposing buffer-bound cursor
// movement.
type Window struct {
	buf *Buffer
	cur *Cursor
}

// NewWindow creates a window over the buffer with the cursor at the
// top.
func NewWindow(b *Buffer) *Window {
	return &Window{buf: b, cur: NewCursor()}
}

// Buffer returns the window's buffer.
func (w *Window) Buffer() *Buffer {
	return w.buf
}

// Position returns the cursor location.
func (w *Window) Position() Position {
	return w.cur.Position()
}

// MoveTo places the cursor at pos, clamped to the buffer.
func (w *Window) MoveTo(pos Position) {
	w.cur.MoveTo(w.buf, pos)
}

// Left moves one column left.
func (w *Window) Left() {
	w.cur.Left(w.buf)
}

// Right moves one column right.
func (w *Window) Right() {
	w.cur.Right(w.buf)
}

// Up moves one line up.
func (w *Window) Up() {
	w.cur.Up(w.buf)
}

// Down moves one line down.
func (w *Window) Down() {
	w.cur.Down(w.buf)
}

// LineStart moves to column 1.
func (w *Window) LineStart() {
	w.cur.LineStart()
}

// LineEnd moves to the last column of the current line.
func (w *Window) LineEnd() {
	w.cur.LineEnd(w.buf)
}

// FirstNonBlank moves to the first non-whitespace column of the
// current line.
func (w *Window) FirstNonBlank() {
	w.cur.FirstNonBlank(w.buf)
}

// Top moves to the first line.
func (w *Window) Top() {
	w.cur.Top(w.buf)
}

// Bottom moves to the last line.
func (w *Window) Bottom() {
	w.cur.Bottom(w.buf)
}
