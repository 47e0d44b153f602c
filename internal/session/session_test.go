package session

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/markpeek/internal/input/key"
)

type fakeOverlay struct {
	names      []rune
	declines   bool
	id         uuid.UUID
	openCalls  int
	closeCalls int
}

func (f *fakeOverlay) Open(buffer string) bool {
	f.openCalls++
	if f.declines {
		return false
	}
	f.id = uuid.New()
	return true
}

func (f *fakeOverlay) Close() {
	f.closeCalls++
	f.id = uuid.Nil
}

func (f *fakeOverlay) Names() []rune {
	return f.names
}

func (f *fakeOverlay) WindowID() uuid.UUID {
	return f.id
}

func TestSessionLifecycle(t *testing.T) {
	ov := &fakeOverlay{names: []rune{'a', 'z', '5'}}
	c := NewController(ov)

	if c.State() != StateIdle {
		t.Fatalf("initial state = %v, want idle", c.State())
	}
	if !c.Trigger(PrefixExact, "main.go") {
		t.Fatal("Trigger failed")
	}
	if c.State() != StateOpening {
		t.Fatalf("state after trigger = %v, want opening", c.State())
	}
	if c.Awaiting() {
		t.Fatal("awaiting input before paint")
	}

	c.Painted()
	if !c.Awaiting() {
		t.Fatal("not awaiting input after paint")
	}

	jump, ok := c.Resume(key.NewRuneEvent('a', key.ModNone))
	if !ok {
		t.Fatal("Resume rejected a valid mark key")
	}
	if jump.Name != 'a' || !jump.Exact {
		t.Errorf("jump = %+v, want name a exact", jump)
	}
	if c.State() != StateIdle {
		t.Errorf("state after resume = %v, want idle", c.State())
	}
	if ov.closeCalls == 0 {
		t.Error("overlay never closed")
	}
}

func TestSessionLinePrefix(t *testing.T) {
	ov := &fakeOverlay{names: []rune{'b'}}
	c := NewController(ov)
	c.Trigger(PrefixLine, "main.go")
	c.Painted()

	jump, ok := c.Resume(key.NewRuneEvent('b', key.ModNone))
	if !ok {
		t.Fatal("Resume rejected a valid mark key")
	}
	if jump.Exact {
		t.Error("quote prefix produced an exact jump")
	}
}

func TestSessionDeclinedOpen(t *testing.T) {
	ov := &fakeOverlay{declines: true}
	c := NewController(ov)

	if c.Trigger(PrefixLine, "scratch") {
		t.Fatal("Trigger succeeded against a declining overlay")
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v after declined open, want idle", c.State())
	}
}

func TestSessionInvalidKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   key.Event
	}{
		{"escape", key.NewSpecialEvent(key.KeyEscape, key.ModNone)},
		{"enter", key.NewSpecialEvent(key.KeyEnter, key.ModNone)},
		{"punctuation", key.NewRuneEvent('!', key.ModNone)},
		{"ctrl-modified", key.NewRuneEvent('a', key.ModCtrl)},
		{"unknown mark", key.NewRuneEvent('q', key.ModNone)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ov := &fakeOverlay{names: []rune{'a'}}
			c := NewController(ov)
			c.Trigger(PrefixExact, "main.go")
			c.Painted()

			if _, ok := c.Resume(tt.ev); ok {
				t.Error("Resume produced a jump")
			}
			if c.State() != StateIdle {
				t.Errorf("state = %v, want idle", c.State())
			}
			if ov.closeCalls == 0 {
				t.Error("overlay not torn down on invalid key")
			}
		})
	}
}

func TestSessionResumeBeforePaint(t *testing.T) {
	ov := &fakeOverlay{names: []rune{'a'}}
	c := NewController(ov)
	c.Trigger(PrefixExact, "main.go")

	if _, ok := c.Resume(key.NewRuneEvent('a', key.ModNone)); ok {
		t.Error("Resume consumed a key before the overlay painted")
	}
	if c.State() != StateOpening {
		t.Errorf("state = %v, want opening", c.State())
	}
}

func TestSessionRetrigger(t *testing.T) {
	ov := &fakeOverlay{names: []rune{'a'}}
	c := NewController(ov)

	c.Trigger(PrefixLine, "main.go")
	c.Painted()
	closesBefore := ov.closeCalls
	if !c.Trigger(PrefixExact, "main.go") {
		t.Fatal("retrigger failed")
	}
	if ov.closeCalls <= closesBefore {
		t.Error("old session not torn down on retrigger")
	}
	c.Painted()

	// The replacement session carries the new prefix.
	jump, ok := c.Resume(key.NewRuneEvent('a', key.ModNone))
	if !ok || !jump.Exact {
		t.Errorf("jump = %+v ok=%v, want exact jump", jump, ok)
	}
}

func TestSessionStaleOverlay(t *testing.T) {
	ov := &fakeOverlay{names: []rune{'a'}}
	c := NewController(ov)
	c.Trigger(PrefixExact, "main.go")
	c.Painted()

	// The overlay was replaced behind the controller's back.
	ov.id = uuid.New()

	if _, ok := c.Resume(key.NewRuneEvent('a', key.ModNone)); ok {
		t.Error("stale session produced a jump")
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestSessionCancel(t *testing.T) {
	ov := &fakeOverlay{names: []rune{'a'}}
	c := NewController(ov)
	c.Trigger(PrefixExact, "main.go")
	c.Painted()

	c.Cancel()
	if c.State() != StateIdle {
		t.Errorf("state = %v after cancel, want idle", c.State())
	}
	if ov.closeCalls == 0 {
		t.Error("cancel did not tear down the overlay")
	}
}

func TestSessionSnapshotValidation(t *testing.T) {
	ov := &fakeOverlay{names: []rune{'a'}}
	c := NewController(ov)
	c.Trigger(PrefixExact, "main.go")
	c.Painted()

	// Marks added after open are not honored.
	ov.names = []rune{'a', 'b'}

	if _, ok := c.Resume(key.NewRuneEvent('b', key.ModNone)); ok {
		t.Error("session honored a mark added after open")
	}
}
