package render

import "testing"

func TestViewportVisibleRange(t *testing.T) {
	vp := NewViewport(80, 10)
	vp.SetMaxLine(100)

	start, end := vp.VisibleLineRange()
	if start != 1 || end != 10 {
		t.Errorf("VisibleLineRange() = (%d, %d), want (1, 10)", start, end)
	}

	vp.ScrollIntoView(50, 1)
	start, end = vp.VisibleLineRange()
	if end-start != 9 {
		t.Errorf("range spans %d lines, want 10", end-start+1)
	}
	if 50 < start || 50 > end {
		t.Errorf("line 50 not in visible range (%d, %d)", start, end)
	}
}

func TestViewportBufferToScreen(t *testing.T) {
	vp := NewViewport(80, 10)
	vp.SetMaxLine(100)

	row, col := vp.BufferToScreen(1, 1)
	if row != 0 || col != 0 {
		t.Errorf("BufferToScreen(1, 1) = (%d, %d), want (0, 0)", row, col)
	}

	row, col = vp.BufferToScreen(5, 12)
	if row != 4 || col != 11 {
		t.Errorf("BufferToScreen(5, 12) = (%d, %d), want (4, 11)", row, col)
	}

	// Off-screen positions report (-1, -1).
	if row, col = vp.BufferToScreen(11, 1); row != -1 || col != -1 {
		t.Errorf("BufferToScreen(11, 1) = (%d, %d), want (-1, -1)", row, col)
	}
	if row, col = vp.BufferToScreen(1, 81); row != -1 || col != -1 {
		t.Errorf("BufferToScreen(1, 81) = (%d, %d), want (-1, -1)", row, col)
	}
	if row, col = vp.BufferToScreen(0, 1); row != -1 || col != -1 {
		t.Errorf("BufferToScreen(0, 1) = (%d, %d), want (-1, -1)", row, col)
	}
}

func TestViewportScrollIntoView(t *testing.T) {
	vp := NewViewport(80, 10)
	vp.SetMaxLine(100)

	if vp.ScrollIntoView(5, 1) {
		t.Error("scrolling to a visible line should not move the viewport")
	}
	if !vp.ScrollIntoView(50, 1) {
		t.Error("scrolling to line 50 should move the viewport")
	}
	if vp.TopLine() == 1 {
		t.Error("viewport did not scroll down")
	}

	// Scrolling back to the top resets the window.
	vp.ScrollIntoView(1, 1)
	if vp.TopLine() != 1 {
		t.Errorf("TopLine() = %d, want 1", vp.TopLine())
	}
}

func TestViewportScrolloff(t *testing.T) {
	vp := NewViewport(80, 10)
	vp.SetMaxLine(100)
	vp.SetScrolloff(3)

	vp.ScrollIntoView(20, 1)
	start, end := vp.VisibleLineRange()
	if 20-start < 3 || end-20 < 3 {
		t.Errorf("line 20 closer than scrolloff to edge of (%d, %d)", start, end)
	}
}

func TestViewportClampsToMaxLine(t *testing.T) {
	vp := NewViewport(80, 10)
	vp.SetMaxLine(100)
	vp.ScrollIntoView(100, 1)

	// Shrinking the buffer pulls the top line back in range.
	vp.SetMaxLine(5)
	if vp.TopLine() != 1 {
		t.Errorf("TopLine() = %d after shrink, want 1", vp.TopLine())
	}
}

func TestViewportResizeMinimum(t *testing.T) {
	vp := NewViewport(80, 10)
	vp.Resize(0, -5)
	if vp.Width() != 1 || vp.Height() != 1 {
		t.Errorf("Resize(0, -5) = %dx%d, want 1x1", vp.Width(), vp.Height())
	}
}
