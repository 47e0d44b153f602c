package render

import (
	"strings"
	"testing"

	"github.com/dshills/markpeek/internal/render/backend"
)

type stubSource struct {
	lines []string
}

func (s *stubSource) Line(n int) (string, bool) {
	if n < 1 || n > len(s.lines) {
		return "", false
	}
	return s.lines[n-1], true
}

func (s *stubSource) LineCount() int {
	return len(s.lines)
}

func TestRendererDrawsVisibleLines(t *testing.T) {
	b := backend.NewNull(40, 6)
	r := New(b)
	src := &stubSource{lines: []string{"alpha", "beta", "gamma"}}

	r.Draw(src, 1, 1)

	if got := b.RowString(0); got != "alpha" {
		t.Errorf("row 0 = %q, want %q", got, "alpha")
	}
	if got := b.RowString(2); got != "gamma" {
		t.Errorf("row 2 = %q, want %q", got, "gamma")
	}
	// Rows past the end of the buffer show a tilde.
	if got := b.RowString(3); got != "~" {
		t.Errorf("row 3 = %q, want %q", got, "~")
	}
}

func TestRendererStatusLineRow(t *testing.T) {
	b := backend.NewNull(40, 6)
	r := New(b)
	r.StatusLine().SetMode("NORMAL")
	r.StatusLine().SetFilename("notes.txt")
	r.StatusLine().SetPosition(2, 3, 5)
	src := &stubSource{lines: []string{"one", "two"}}

	r.Draw(src, 2, 3)

	bar := b.RowString(5)
	if !strings.Contains(bar, "NORMAL") {
		t.Errorf("status bar %q missing mode", bar)
	}
	if !strings.Contains(bar, "notes.txt") {
		t.Errorf("status bar %q missing filename", bar)
	}
	if !strings.Contains(bar, "2:3/5") {
		t.Errorf("status bar %q missing position", bar)
	}
}

func TestRendererStatusMessage(t *testing.T) {
	b := backend.NewNull(60, 6)
	r := New(b)
	r.StatusLine().SetMessage("cannot resolve cursor position", true)
	src := &stubSource{lines: []string{"x"}}

	r.Draw(src, 1, 1)

	if bar := b.RowString(5); !strings.Contains(bar, "cannot resolve cursor position") {
		t.Errorf("status bar %q missing warning message", bar)
	}
}

func TestRendererCursorPlacement(t *testing.T) {
	b := backend.NewNull(40, 6)
	r := New(b)
	src := &stubSource{lines: []string{"hello world"}}

	r.Draw(src, 1, 7)

	x, y, visible := b.CursorPosition()
	if !visible {
		t.Fatal("cursor not visible")
	}
	if x != 6 || y != 0 {
		t.Errorf("cursor at (%d, %d), want (6, 0)", x, y)
	}
}

func TestRendererTabExpansion(t *testing.T) {
	b := backend.NewNull(40, 6)
	r := New(b)
	r.SetTabstop(4)
	src := &stubSource{lines: []string{"\tx"}}

	r.Draw(src, 1, 2)

	if got := b.RowString(0); got != "    x" {
		t.Errorf("row 0 = %q, want %q", got, "    x")
	}
	// The cursor lands after the expanded tab.
	x, _, _ := b.CursorPosition()
	if x != 4 {
		t.Errorf("cursor col = %d, want 4", x)
	}
}

func TestRendererDisplayCol(t *testing.T) {
	b := backend.NewNull(40, 6)
	r := New(b)
	r.SetTabstop(4)

	tests := []struct {
		line string
		col  int
		want int
	}{
		{"hello", 1, 1},
		{"hello", 3, 3},
		{"\tx", 2, 5},
		{"a\tb", 3, 5},
		{"日本", 2, 3},
	}
	for _, tt := range tests {
		if got := r.DisplayCol(tt.line, tt.col); got != tt.want {
			t.Errorf("DisplayCol(%q, %d) = %d, want %d", tt.line, tt.col, got, tt.want)
		}
	}
}

func TestRendererScrollKeepsCursorVisible(t *testing.T) {
	b := backend.NewNull(40, 6)
	r := New(b)
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	src := &stubSource{lines: lines}
	r.Viewport().SetMaxLine(50)

	r.ScrollTo(src, 40, 1)
	r.Draw(src, 40, 1)

	if _, y, visible := b.CursorPosition(); !visible || y < 0 {
		t.Errorf("cursor not visible after scroll, visible=%v y=%d", visible, y)
	}
	first, last := r.Viewport().VisibleLineRange()
	if 40 < first || 40 > last {
		t.Errorf("line 40 outside visible range (%d, %d)", first, last)
	}
}

func TestRendererResizeReservesStatusRow(t *testing.T) {
	b := backend.NewNull(40, 6)
	r := New(b)
	if r.Viewport().Height() != 5 {
		t.Errorf("text height = %d, want 5", r.Viewport().Height())
	}
	r.Resize(80, 24)
	if r.Viewport().Height() != 23 {
		t.Errorf("text height after resize = %d, want 23", r.Viewport().Height())
	}
	if r.Viewport().Width() != 80 {
		t.Errorf("text width after resize = %d, want 80", r.Viewport().Width())
	}
}
