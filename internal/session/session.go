// Package session drives the marks preview input session: open the
// overlay, wait for exactly one keystroke once it has painted, tear
// the overlay down, and translate the key into a jump request.
package session

import (
	"github.com/google/uuid"

	"github.com/dshills/markpeek/internal/input/key"
	"github.com/dshills/markpeek/internal/mark"
)

// State is the controller's position in the session lifecycle.
type State int

const (
	// StateIdle means no session is active.
	StateIdle State = iota
	// StateOpening means the overlay exists but has not painted yet.
	StateOpening
	// StateAwaitingKey means the overlay is visible and the next
	// keystroke belongs to the session.
	StateAwaitingKey
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpening:
		return "opening"
	case StateAwaitingKey:
		return "awaiting-key"
	}
	return "unknown"
}

// Prefix is the trigger character that started the session. It decides
// the jump style when the session completes.
type Prefix rune

const (
	// PrefixLine jumps to the first non-blank column of the mark's
	// line.
	PrefixLine Prefix = '\''
	// PrefixExact jumps to the mark's exact line and column.
	PrefixExact Prefix = '`'
)

// Jump is the navigation request produced by a completed session.
type Jump struct {
	Name  rune
	Exact bool
}

// Overlay is the popup surface the controller drives.
type Overlay interface {
	Open(buffer string) bool
	Close()
	Names() []rune
	WindowID() uuid.UUID
}

// Controller owns the single marks preview session. There is at most
// one session; triggering while one is active replaces it.
type Controller struct {
	overlay Overlay

	state  State
	prefix Prefix
	names  []rune
	winID  uuid.UUID
}

// NewController creates an idle session controller.
func NewController(overlay Overlay) *Controller {
	return &Controller{overlay: overlay}
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// Awaiting reports whether the next keystroke belongs to the session.
func (c *Controller) Awaiting() bool {
	return c.state == StateAwaitingKey
}

// Trigger starts a session for buffer with the given prefix. Returns
// false when the overlay declines to open; the controller is back to
// idle in that case. A session already in flight is replaced.
func (c *Controller) Trigger(prefix Prefix, buffer string) bool {
	c.reset()
	if !c.overlay.Open(buffer) {
		return false
	}
	c.state = StateOpening
	c.prefix = prefix
	c.names = c.overlay.Names()
	c.winID = c.overlay.WindowID()
	return true
}

// Painted advances the session once the frame containing the overlay
// has been flushed. Input capture starts only after this point.
func (c *Controller) Painted() {
	if c.state == StateOpening {
		c.state = StateAwaitingKey
	}
}

// Resume consumes the captured keystroke. The overlay is torn down
// unconditionally before the key is examined. Returns a jump request
// and true when the key names a mark from the open-time snapshot;
// every other key ends the session with no action.
func (c *Controller) Resume(ev key.Event) (Jump, bool) {
	if c.state != StateAwaitingKey {
		return Jump{}, false
	}
	if c.overlay.WindowID() != c.winID {
		// The overlay was replaced out from under the session.
		c.reset()
		return Jump{}, false
	}

	prefix := c.prefix
	names := c.names
	c.reset()

	if !ev.IsRune() || ev.IsModified() {
		return Jump{}, false
	}
	if !mark.IsValidName(ev.Rune) {
		return Jump{}, false
	}
	if !contains(names, ev.Rune) {
		return Jump{}, false
	}
	return Jump{Name: ev.Rune, Exact: prefix == PrefixExact}, true
}

// Cancel ends any session in flight and tears down the overlay.
func (c *Controller) Cancel() {
	c.reset()
}

// reset tears down the overlay and returns the controller to idle.
// Teardown is idempotent, so this is safe on every exit path.
func (c *Controller) reset() {
	c.overlay.Close()
	c.state = StateIdle
	c.prefix = 0
	c.names = nil
	c.winID = uuid.Nil
}

func contains(names []rune, r rune) bool {
	for _, n := range names {
		if n == r {
			return true
		}
	}
	return false
}
