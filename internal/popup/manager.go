package popup

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/markpeek/internal/mark"
	"github.com/dshills/markpeek/internal/render/backend"
	"github.com/dshills/markpeek/internal/render/core"
)

// Surface supplies the screen geometry the overlay is placed against.
type Surface interface {
	// ViewSize returns the text area dimensions in cells.
	ViewSize() (width, height int)
	// CursorScreenPos returns the cursor's screen coordinates, or
	// ok=false when the cursor is scrolled out of view.
	CursorScreenPos() (row, col int, ok bool)
}

// WarnFunc surfaces a non-fatal warning to the user.
type WarnFunc func(msg string)

// Formatter customizes how one mark becomes an overlay line. ok=false
// means the formatter declined and the default format applies.
type Formatter interface {
	FormatLine(name rune, content string) (string, bool)
}

// Manager owns the single marks overlay. Opening while one is active
// force-closes the old window first; close is safe to repeat.
type Manager struct {
	mu sync.RWMutex

	collector *mark.Collector
	surface   Surface
	opts      Options
	warn      WarnFunc
	formatter Formatter

	win   *Window
	cache []rune
}

// NewManager creates an overlay manager. A nil warn function discards
// warnings.
func NewManager(collector *mark.Collector, surface Surface, opts Options, warn WarnFunc) *Manager {
	if warn == nil {
		warn = func(string) {}
	}
	return &Manager{
		collector: collector,
		surface:   surface,
		opts:      opts,
		warn:      warn,
	}
}

// Open collects the marks for buffer and creates the overlay window.
// Returns false without creating anything when the collector declines
// the buffer. An already-open overlay is closed first.
func (m *Manager) Open(buffer string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeLocked()

	records, ok := m.collector.Collect(buffer)
	if !ok {
		return false
	}

	viewWidth, viewHeight := m.surface.ViewSize()
	row, col, onScreen := m.surface.CursorScreenPos()
	opts := m.opts
	if !onScreen && opts.Position == HintCursor {
		opts.Position = HintTopLeft
		m.warn("marks: cursor position unresolvable, showing at top-left")
	}

	geom := Place(opts, row, col, viewWidth, viewHeight, len(records))
	m.win = newWindow(geom, m.formatLines(records), m.windowStyle())
	m.cache = cacheNames(records)
	return true
}

// SetFormatter installs a custom line formatter. A nil formatter
// restores the default format.
func (m *Manager) SetFormatter(f Formatter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.formatter = f
}

// Update replaces the overlay content with a new mark list. The window
// geometry is unchanged. No-op when nothing is open.
func (m *Manager) Update(records []mark.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.win == nil {
		return
	}
	m.win.replaceContent(m.formatLines(records))
	m.cache = cacheNames(records)
}

// Close tears down the overlay and clears the mark cache. Safe to call
// when nothing is open.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.win != nil {
		m.win.destroy()
		m.win = nil
	}
	m.cache = nil
}

// IsOpen reports whether an overlay window is active.
func (m *Manager) IsOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.win != nil
}

// WindowID returns the identity of the open window, or uuid.Nil when
// nothing is open.
func (m *Manager) WindowID() uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.win == nil {
		return uuid.Nil
	}
	return m.win.id
}

// HasMark reports whether name was in the mark list shown at open
// time. The cache is never re-queried from the host.
func (m *Manager) HasMark(name rune) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.cache {
		if r == name {
			return true
		}
	}
	return false
}

// Names returns a copy of the mark names shown at open time.
func (m *Manager) Names() []rune {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]rune, len(m.cache))
	copy(names, m.cache)
	return names
}

// Render blits the overlay onto the backend if one is open.
func (m *Manager) Render(b backend.Backend) {
	m.mu.RLock()
	win := m.win
	m.mu.RUnlock()
	if win != nil {
		win.Render(b)
	}
}

func (m *Manager) windowStyle() core.Style {
	return core.DefaultStyle().
		WithForeground(core.ColorWhite).
		WithBackground(core.ColorFromIndex(236))
}

// formatLines applies the custom formatter per line when one is set,
// falling back to the default for lines it declines. Called with the
// mutex held.
func (m *Manager) formatLines(records []mark.Record) []string {
	if m.formatter == nil {
		return FormatLines(records)
	}
	if len(records) == 0 {
		return []string{"no marks"}
	}
	lines := make([]string, len(records))
	for i, r := range records {
		if s, ok := m.formatter.FormatLine(r.Name, r.Content); ok {
			lines[i] = s
		} else {
			lines[i] = fmt.Sprintf("%c: %s", r.Name, r.Content)
		}
	}
	return lines
}

// FormatLines renders mark records into overlay lines, one per mark in
// collector order. An empty list yields the single line "no marks".
func FormatLines(records []mark.Record) []string {
	if len(records) == 0 {
		return []string{"no marks"}
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = fmt.Sprintf("%c: %s", r.Name, r.Content)
	}
	return lines
}

func cacheNames(records []mark.Record) []rune {
	names := make([]rune, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}
