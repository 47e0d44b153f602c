package app

import (
	"github.com/dshills/markpeek/internal/editor"
	"github.com/dshills/markpeek/internal/mark"
	"github.com/dshills/markpeek/internal/session"
)

// markHost exposes the buffer manager to the mark collector.
type markHost struct {
	buffers *editor.Manager
}

func (h *markHost) IsValid(name string) bool {
	return h.buffers.IsValid(name)
}

func (h *markHost) IsSpecial(name string) bool {
	b, ok := h.buffers.Lookup(name)
	return ok && b.IsScratch()
}

func (h *markHost) Line(name string, n int) (string, bool) {
	b, ok := h.buffers.Lookup(name)
	if !ok {
		return "", false
	}
	return b.Line(n)
}

func (h *markHost) Marks(name string) []mark.RawMark {
	b, ok := h.buffers.Lookup(name)
	if !ok {
		return nil
	}
	ms := b.Marks()
	raws := make([]mark.RawMark, len(ms))
	for i, m := range ms {
		raws[i] = mark.RawMark{
			Name:   string(m.Name),
			Buffer: m.Buffer,
			Line:   m.Line,
			Col:    m.Col,
		}
	}
	return raws
}

// renderSurface exposes the renderer's geometry to the popup manager.
// Methods tolerate a nil renderer because the popup manager is built
// before Run creates one.
type renderSurface struct {
	app *Application
}

func (s *renderSurface) ViewSize() (int, int) {
	r := s.app.renderer
	if r == nil {
		return 0, 0
	}
	return r.Viewport().Width(), r.Viewport().Height()
}

func (s *renderSurface) CursorScreenPos() (int, int, bool) {
	r := s.app.renderer
	if r == nil || s.app.window == nil {
		return 0, 0, false
	}
	pos := s.app.window.Position()
	row, col := r.CursorScreenPos(s.app.window.Buffer(), pos.Line, pos.Col)
	if row < 0 || col < 0 {
		return 0, 0, false
	}
	return row, col, true
}

// sessionBridge adapts the session controller to the handler-facing
// trigger interface.
type sessionBridge struct {
	app *Application
}

func (s *sessionBridge) Trigger(prefix rune, buffer string) bool {
	p := session.PrefixLine
	if prefix == rune(session.PrefixExact) {
		p = session.PrefixExact
	}
	return s.app.session.Trigger(p, buffer)
}

// viewAdapter lets handlers scroll the renderer's viewport.
type viewAdapter struct {
	app *Application
}

func (v *viewAdapter) ScrollTo(pos editor.Position) bool {
	r := v.app.renderer
	if r == nil {
		return false
	}
	return r.ScrollTo(v.app.window.Buffer(), pos.Line, pos.Col)
}

// statusNotifier routes handler messages to the status line.
type statusNotifier struct {
	app *Application
}

func (n *statusNotifier) Info(msg string) {
	if r := n.app.renderer; r != nil {
		r.StatusLine().SetMessage(msg, false)
	}
}

func (n *statusNotifier) Warn(msg string) {
	n.app.warn(msg)
}
