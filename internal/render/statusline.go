package render

import (
	"fmt"

	"github.com/dshills/markpeek/internal/render/backend"
	"github.com/dshills/markpeek/internal/render/core"
)

// StatusLine renders the bottom line: mode, buffer name, transient
// message, and cursor position.
type StatusLine struct {
	mode       string
	filename   string
	line, col  int
	totalLines int

	message string
	warning bool

	width int

	modeStyles map[string]core.Style
	barStyle   core.Style
	warnStyle  core.Style
}

// NewStatusLine creates a status line with default styles.
func NewStatusLine() *StatusLine {
	return &StatusLine{
		mode: "NORMAL",
		modeStyles: map[string]core.Style{
			"NORMAL":  core.DefaultStyle().Bold().WithBackground(core.ColorFromIndex(4)).WithForeground(core.ColorWhite),
			"PREVIEW": core.DefaultStyle().Bold().WithBackground(core.ColorFromIndex(3)).WithForeground(core.ColorBlack),
		},
		barStyle:  core.DefaultStyle().WithBackground(core.ColorGray).WithForeground(core.ColorWhite),
		warnStyle: core.DefaultStyle().Bold().WithBackground(core.ColorYellow).WithForeground(core.ColorBlack),
	}
}

// SetMode updates the displayed mode.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// SetFilename updates the displayed buffer name.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col, total int) {
	s.line = line
	s.col = col
	s.totalLines = total
}

// SetMessage displays a transient message. Warnings render in the
// warning style until cleared.
func (s *StatusLine) SetMessage(msg string, warning bool) {
	s.message = msg
	s.warning = warning
}

// ClearMessage clears the transient message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.warning = false
}

// Message returns the current transient message.
func (s *StatusLine) Message() string {
	return s.message
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	for x := 0; x < s.width; x++ {
		b.SetCell(x, row, core.NewStyledCell(' ', s.barStyle))
	}

	modeStyle, ok := s.modeStyles[s.mode]
	if !ok {
		modeStyle = core.DefaultStyle().Bold().WithBackground(core.ColorGray)
	}

	col := 0
	col = s.drawSegment(b, row, col, " "+s.mode+" ", modeStyle)

	name := s.filename
	if name == "" {
		name = "[No Name]"
	}
	col = s.drawSegment(b, row, col, " "+name, s.barStyle)

	if s.message != "" {
		style := s.barStyle
		if s.warning {
			style = s.warnStyle
		}
		s.drawSegment(b, row, col+2, s.message, style)
	}

	pos := fmt.Sprintf("%d:%d/%d ", s.line, s.col, s.totalLines)
	start := s.width - core.StringWidth(pos)
	if start > col {
		s.drawSegment(b, row, start, pos, s.barStyle)
	}
}

// drawSegment writes text starting at col, clipped to the width.
// Returns the column after the segment.
func (s *StatusLine) drawSegment(b backend.Backend, row, col int, text string, style core.Style) int {
	for _, c := range core.CellsFromString(text, style) {
		if col >= s.width {
			break
		}
		b.SetCell(col, row, c)
		col++
	}
	return col
}
