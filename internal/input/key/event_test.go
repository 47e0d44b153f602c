package key

import "testing"

func TestIsRune(t *testing.T) {
	ev := NewRuneEvent('a', ModNone)
	if !ev.IsRune() {
		t.Error("rune event should report IsRune")
	}
	esc := NewSpecialEvent(KeyEscape, ModNone)
	if esc.IsRune() {
		t.Error("escape should not report IsRune")
	}
}

func TestIsModified(t *testing.T) {
	shifted := NewRuneEvent('A', ModShift)
	if shifted.IsModified() {
		t.Error("shift alone should not count as modified for runes")
	}
	ctrl := NewRuneEvent('q', ModCtrl)
	if !ctrl.IsModified() {
		t.Error("ctrl rune should count as modified")
	}
	shiftTab := NewSpecialEvent(KeyTab, ModShift)
	if !shiftTab.IsModified() {
		t.Error("shift on special keys should count as modified")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewRuneEvent('q', ModCtrl), "C-q"},
		{NewSpecialEvent(KeyEnter, ModNone), "Enter"},
		{NewSpecialEvent(KeyTab, ModShift), "S-Tab"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEquals(t *testing.T) {
	a := NewRuneEvent('m', ModNone)
	b := NewRuneEvent('m', ModNone)
	if !a.Equals(b) {
		t.Error("identical presses should be equal regardless of timestamp")
	}
	c := NewRuneEvent('m', ModCtrl)
	if a.Equals(c) {
		t.Error("different modifiers should not be equal")
	}
}
