// Package editor holds the buffer model: line storage, cursor state,
// and the per-buffer mark registry the preview popup reads from.
package editor

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Position is a 1-based line/column location in a buffer.
type Position struct {
	Line int
	Col  int
}

// Mark is a named bookmark tied to a buffer position.
// Any printable rune is a legal name at this layer; consumers decide
// which names they care about.
type Mark struct {
	Name   rune
	Buffer string
	Line   int
	Col    int
}

// Buffer is an open text buffer. Scratch buffers have no backing path.
type Buffer struct {
	mu sync.RWMutex

	// Path is the absolute file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	lines []string
	marks map[rune]Position
}

// NewBuffer creates a buffer from file content.
func NewBuffer(path string, content []byte) *Buffer {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	return &Buffer{
		Path:  path,
		Name:  name,
		lines: splitLines(string(content)),
		marks: make(map[rune]Position),
	}
}

// NewScratchBuffer creates a buffer with no backing file.
func NewScratchBuffer() *Buffer {
	return &Buffer{
		Name:  "Untitled",
		lines: []string{""},
		marks: make(map[rune]Position),
	}
}

// IsScratch returns true if this buffer has no file path.
func (b *Buffer) IsScratch() bool {
	return b.Path == ""
}

// LineCount returns the number of lines. A buffer always has at
// least one (possibly empty) line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the 1-based line n. The second return is false when n
// is out of range.
func (b *Buffer) Line(n int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n < 1 || n > len(b.lines) {
		return "", false
	}
	return b.lines[n-1], true
}

// FirstNonBlank returns the 1-based column of the first non-whitespace
// rune on line n, or 1 if the line is blank or out of range.
func (b *Buffer) FirstNonBlank(n int) int {
	line, ok := b.Line(n)
	if !ok {
		return 1
	}
	for i, r := range line {
		if !unicode.IsSpace(r) {
			return runeIndexToCol(line, i)
		}
	}
	return 1
}

// SetMark records a mark at the given position. The position is
// clamped to the buffer.
func (b *Buffer) SetMark(name rune, pos Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if pos.Line < 1 {
		pos.Line = 1
	}
	if pos.Line > len(b.lines) {
		pos.Line = len(b.lines)
	}
	if pos.Col < 1 {
		pos.Col = 1
	}
	b.marks[name] = pos
}

// Mark looks up a mark by name.
func (b *Buffer) Mark(name rune) (Position, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	pos, ok := b.marks[name]
	return pos, ok
}

// Marks returns all marks in ascending name order. The order is
// stable for a given mark set; listings depend on it.
func (b *Buffer) Marks() []Mark {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]rune, 0, len(b.marks))
	for name := range b.marks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	marks := make([]Mark, 0, len(names))
	for _, name := range names {
		pos := b.marks[name]
		marks = append(marks, Mark{
			Name:   name,
			Buffer: b.Name,
			Line:   pos.Line,
			Col:    pos.Col,
		})
	}
	return marks
}

// splitLines splits file content into lines. A trailing newline
// terminates the last line rather than opening an empty one.
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// runeIndexToCol converts a byte index within line to a 1-based
// rune column.
func runeIndexToCol(line string, byteIdx int) int {
	col := 1
	for i := range line {
		if i >= byteIdx {
			break
		}
		col++
	}
	return col
}
