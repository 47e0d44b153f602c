package input

import "github.com/dshills/markpeek/internal/input/key"

// pending tracks a multi-key sequence in progress.
type pending int

const (
	pendingNone pending = iota
	pendingMark         // m awaiting the mark name
	pendingG            // g awaiting the second g
	pendingZ            // Z awaiting the second Z
)

// Parser turns normal-mode keystrokes into actions. Multi-key
// sequences (count prefixes, m{char}, gg, ZZ) hold state between
// calls; Escape abandons any sequence in progress.
type Parser struct {
	pending pending
	count   int
}

// NewParser creates a parser with no pending state.
func NewParser() *Parser {
	return &Parser{}
}

// Pending reports whether a multi-key sequence is in progress.
func (p *Parser) Pending() bool {
	return p.pending != pendingNone || p.count > 0
}

// Reset abandons any sequence in progress.
func (p *Parser) Reset() {
	p.pending = pendingNone
	p.count = 0
}

// Parse consumes one keystroke. Returns an action and true when the
// keystroke completes a command; false while a sequence is pending or
// the key is unmapped.
func (p *Parser) Parse(ev key.Event) (Action, bool) {
	if ev.IsEscape() {
		p.Reset()
		return Action{}, false
	}

	switch p.pending {
	case pendingMark:
		p.pending = pendingNone
		if !ev.IsRune() || ev.IsModified() {
			p.Reset()
			return Action{}, false
		}
		return p.emit(NewAction("mark.set").WithChar(ev.Rune))
	case pendingG:
		p.pending = pendingNone
		if ev.IsRune() && ev.Rune == 'g' && !ev.IsModified() {
			return p.emit(NewAction("cursor.top"))
		}
		p.Reset()
		return Action{}, false
	case pendingZ:
		p.pending = pendingNone
		if ev.IsRune() && ev.Rune == 'Z' && !ev.IsModified() {
			return p.emit(NewAction("app.quit"))
		}
		p.Reset()
		return Action{}, false
	}

	if !ev.IsRune() {
		return p.parseSpecial(ev)
	}
	if ev.Modifiers.HasCtrl() {
		return p.parseCtrl(ev)
	}
	return p.parseRune(ev)
}

// parseRune handles unmodified printable keys.
func (p *Parser) parseRune(ev key.Event) (Action, bool) {
	r := ev.Rune

	// Count prefix. A leading 0 is the line-start motion instead.
	if r >= '1' && r <= '9' || (r == '0' && p.count > 0) {
		p.count = p.count*10 + int(r-'0')
		return Action{}, false
	}

	switch r {
	case 'h':
		return p.emit(NewAction("cursor.left"))
	case 'j':
		return p.emit(NewAction("cursor.down"))
	case 'k':
		return p.emit(NewAction("cursor.up"))
	case 'l':
		return p.emit(NewAction("cursor.right"))
	case '0':
		return p.emit(NewAction("cursor.lineStart"))
	case '^':
		return p.emit(NewAction("cursor.firstNonBlank"))
	case '$':
		return p.emit(NewAction("cursor.lineEnd"))
	case 'g':
		p.pending = pendingG
		return Action{}, false
	case 'G':
		return p.emit(NewAction("cursor.bottom"))
	case 'm':
		p.pending = pendingMark
		return Action{}, false
	case '\'', '`':
		return p.emit(NewAction("mark.preview").WithChar(r))
	case 'Z':
		p.pending = pendingZ
		return Action{}, false
	}

	p.Reset()
	return Action{}, false
}

// parseCtrl handles control-modified keys.
func (p *Parser) parseCtrl(ev key.Event) (Action, bool) {
	switch ev.Rune {
	case 'q':
		return p.emit(NewAction("app.quit"))
	case 'l':
		return p.emit(NewAction("app.redraw"))
	}
	p.Reset()
	return Action{}, false
}

// parseSpecial handles non-rune keys.
func (p *Parser) parseSpecial(ev key.Event) (Action, bool) {
	switch ev.Key {
	case key.KeyLeft:
		return p.emit(NewAction("cursor.left"))
	case key.KeyDown:
		return p.emit(NewAction("cursor.down"))
	case key.KeyUp:
		return p.emit(NewAction("cursor.up"))
	case key.KeyRight:
		return p.emit(NewAction("cursor.right"))
	case key.KeyHome:
		return p.emit(NewAction("cursor.lineStart"))
	case key.KeyEnd:
		return p.emit(NewAction("cursor.lineEnd"))
	}
	p.Reset()
	return Action{}, false
}

// emit attaches the accumulated count and clears parser state.
func (p *Parser) emit(a Action) (Action, bool) {
	if p.count > 0 {
		a = a.WithCount(p.count)
	}
	p.Reset()
	return a, true
}
