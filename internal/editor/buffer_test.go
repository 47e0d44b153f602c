package editor

import "testing"

func TestBufferLines(t *testing.T) {
	b := NewBuffer("/tmp/test.txt", []byte("alpha\nbeta\ngamma\n"))
	if got := b.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}
	line, ok := b.Line(2)
	if !ok || line != "beta" {
		t.Errorf("Line(2) = %q, %v, want %q, true", line, ok, "beta")
	}
	if _, ok := b.Line(0); ok {
		t.Error("Line(0) should be out of range")
	}
	if _, ok := b.Line(4); ok {
		t.Error("Line(4) should be out of range")
	}
}

func TestBufferCRLF(t *testing.T) {
	b := NewBuffer("/tmp/test.txt", []byte("one\r\ntwo\r\n"))
	line, _ := b.Line(1)
	if line != "one" {
		t.Errorf("Line(1) = %q, want %q", line, "one")
	}
}

func TestScratchBuffer(t *testing.T) {
	b := NewScratchBuffer()
	if !b.IsScratch() {
		t.Error("scratch buffer should report IsScratch")
	}
	if b.LineCount() != 1 {
		t.Errorf("scratch buffer should have one empty line, got %d", b.LineCount())
	}

	f := NewBuffer("/tmp/x.txt", []byte("content"))
	if f.IsScratch() {
		t.Error("file buffer should not report IsScratch")
	}
}

func TestFirstNonBlank(t *testing.T) {
	b := NewBuffer("/tmp/test.txt", []byte("  indented\n\nplain\n\ttabbed"))
	tests := []struct {
		line int
		want int
	}{
		{1, 3},
		{2, 1},
		{3, 1},
		{4, 2},
		{99, 1},
	}
	for _, tt := range tests {
		if got := b.FirstNonBlank(tt.line); got != tt.want {
			t.Errorf("FirstNonBlank(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestMarksOrder(t *testing.T) {
	b := NewBuffer("/tmp/test.txt", []byte("l1\nl2\nl3\nl4\nl5"))
	b.SetMark('z', Position{Line: 1, Col: 1})
	b.SetMark('a', Position{Line: 3, Col: 2})
	b.SetMark('5', Position{Line: 5, Col: 1})
	b.SetMark('\'', Position{Line: 2, Col: 1})

	marks := b.Marks()
	if len(marks) != 4 {
		t.Fatalf("expected 4 marks, got %d", len(marks))
	}
	// Ascending rune order: ' (0x27), 5, a, z.
	want := []rune{'\'', '5', 'a', 'z'}
	for i, mk := range marks {
		if mk.Name != want[i] {
			t.Errorf("marks[%d].Name = %q, want %q", i, mk.Name, want[i])
		}
		if mk.Buffer != b.Name {
			t.Errorf("marks[%d].Buffer = %q, want %q", i, mk.Buffer, b.Name)
		}
	}
}

func TestSetMarkClamps(t *testing.T) {
	b := NewBuffer("/tmp/test.txt", []byte("only line"))
	b.SetMark('a', Position{Line: 42, Col: 0})
	pos, ok := b.Mark('a')
	if !ok {
		t.Fatal("mark 'a' should exist")
	}
	if pos.Line != 1 || pos.Col != 1 {
		t.Errorf("mark position = %+v, want {1 1}", pos)
	}
}

func TestMarkOverwrite(t *testing.T) {
	b := NewBuffer("/tmp/test.txt", []byte("a\nb\nc"))
	b.SetMark('m', Position{Line: 1, Col: 1})
	b.SetMark('m', Position{Line: 3, Col: 1})
	pos, _ := b.Mark('m')
	if pos.Line != 3 {
		t.Errorf("mark should move on re-set, line = %d, want 3", pos.Line)
	}
	if len(b.Marks()) != 1 {
		t.Errorf("re-set should not duplicate, got %d marks", len(b.Marks()))
	}
}
