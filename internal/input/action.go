// Package input translates keystrokes into named editor actions.
package input

// Action is a named command produced by the key parser, routed to a
// handler by the dispatcher.
type Action struct {
	// Name is the command identifier (e.g., "cursor.down", "mark.set").
	Name string

	// Args contains command-specific arguments.
	Args ActionArgs

	// Count is the repeat count from a count prefix (0 if absent).
	Count int
}

// ActionArgs carries command-specific arguments.
type ActionArgs struct {
	// Char is the character argument for mark commands: the mark name
	// for set/jump, the trigger prefix for preview.
	Char rune

	// Exact selects exact-position jump semantics; false jumps to the
	// first non-blank column of the mark's line.
	Exact bool
}

// NewAction creates an action with no arguments.
func NewAction(name string) Action {
	return Action{Name: name}
}

// WithCount returns a copy of the action with the count set.
func (a Action) WithCount(count int) Action {
	a.Count = count
	return a
}

// WithChar returns a copy of the action with the character argument
// set.
func (a Action) WithChar(ch rune) Action {
	a.Args.Char = ch
	return a
}

// GetCount returns the repeat count, defaulting to 1.
func (a Action) GetCount() int {
	if a.Count < 1 {
		return 1
	}
	return a.Count
}

// HasCount reports whether an explicit count prefix was given.
func (a Action) HasCount() bool {
	return a.Count > 0
}
